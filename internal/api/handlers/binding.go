package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin/binding"
)

// strictJSON binds request bodies like gin's JSON binding but rejects fields
// the target struct does not declare
type strictJSON struct{}

var strictJSONBinding binding.Binding = strictJSON{}

func (strictJSON) Name() string {
	return "json"
}

func (strictJSON) Bind(req *http.Request, obj interface{}) error {
	if req == nil || req.Body == nil {
		return stderrors.New("invalid request")
	}
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(obj)
}
