package client

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wataki/wataki-go/pkg/models"
)

// encodeBody prepares the request body.
//
// Returns the `obj` input if it is a raw io.Reader object, together with the
// given content type; otherwise returns the json format of the passed argument.
func encodeBody(obj interface{}, contentType string) (interface{}, string, error) {
	if obj == nil {
		return nil, contentType, nil
	}
	if reader, ok := obj.(io.Reader); ok {
		return reader, contentType, nil
	}

	buf, err := json.Marshal(obj)
	if err != nil {
		return nil, "", err
	}
	return buf, "application/json", nil
}

// decodeBody is used to JSON decode a body
func decodeBody(resp *http.Response, out interface{}) error {
	switch resp.ContentLength {
	case 0:
		if out == nil {
			return nil
		}
		return errors.New("got 0 byte response with non-nil decode object")
	default:
		dec := json.NewDecoder(resp.Body)
		return dec.Decode(out)
	}
}

// listQuery encodes pagination parameters, leaving out zero values.
func listQuery(params *models.ListParams) url.Values {
	q := url.Values{}
	if params == nil {
		return q
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Cursor != "" {
		q.Set("cursor", params.Cursor)
	}
	return q
}

// pathID escapes a caller supplied identifier for use as one path segment.
func pathID(id string) string {
	return url.PathEscape(id)
}
