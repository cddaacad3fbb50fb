// Package binder provides a strict JSON request binder for gin,
// unknown fields in the request body are rejected.
package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin/binding"
)

var JSON binding.BindingBody = jsonBinding{}

type jsonBinding struct{}

func (jsonBinding) Name() string {
	return "json"
}

func (jsonBinding) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return errors.New("invalid request")
	}
	return decode(req.Body, obj)
}

func (jsonBinding) BindBody(body []byte, obj any) error {
	return decode(bytes.NewReader(body), obj)
}

func decode(r io.Reader, obj any) (err error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err = decoder.Decode(obj)
	if err != nil {
		return
	}
	return binding.Validator.ValidateStruct(obj)
}
