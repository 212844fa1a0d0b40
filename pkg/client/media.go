package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/wataki/wataki-go/pkg/apierrors"
	"github.com/wataki/wataki-go/pkg/models"
)

const defaultUploadName = "upload"

type Media struct {
	client *Client
}

// Media returns a handle on the media endpoints.
func (c *Client) Media() *Media {
	return &Media{client: c}
}

func mediaPath(instanceID, mediaID string) string {
	return instancePath(instanceID) + "/media/" + pathID(mediaID)
}

// Upload stores the contents of r as a media object that messages can refer
// to. The whole file is buffered so the request can be retried.
func (m *Media) Upload(ctx context.Context, instanceID, filename string, r io.Reader) (*models.MediaObject, error) {
	if err := requireID("instance id", instanceID); err != nil {
		return nil, err
	}
	if filename == "" {
		filename = defaultUploadName
	}

	body, contentType, err := multipartBody(filepath.Base(filename), r)
	if err != nil {
		return nil, apierrors.NewInvalidRequestError(err)
	}

	var res models.MediaObject
	err = m.client.do(ctx, &request{
		op:          "Media.Upload",
		method:      http.MethodPost,
		path:        instancePath(instanceID) + "/media",
		body:        body,
		contentType: contentType,
	}, &res)
	return &res, err
}

func (m *Media) Get(ctx context.Context, instanceID, mediaID string) (*models.MediaObject, error) {
	err := (&validator{}).
		required("instance id", instanceID).
		required("media id", mediaID).
		err()
	if err != nil {
		return nil, err
	}
	var res models.MediaObject
	err = m.client.get(ctx, "Media.Get", mediaPath(instanceID, mediaID), nil, &res)
	return &res, err
}

// Download returns the raw bytes of a media object.
func (m *Media) Download(ctx context.Context, instanceID, mediaID string) ([]byte, error) {
	err := (&validator{}).
		required("instance id", instanceID).
		required("media id", mediaID).
		err()
	if err != nil {
		return nil, err
	}
	var content []byte
	err = m.client.get(ctx, "Media.Download", mediaPath(instanceID, mediaID)+"/content", nil, &content)
	return content, err
}

// multipartBody builds a form with a single "file" part. The part's content
// type is sniffed from the data.
func multipartBody(filename string, r io.Reader) (*bytes.Buffer, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", pkgerrors.Wrap(err, "error reading upload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", http.DetectContentType(data))

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(data); err != nil {
		return nil, "", err
	}
	if err = w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
