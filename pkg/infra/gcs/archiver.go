// Package gcs archives raw uploads to a Cloud Storage bucket so that an
// analysis can be reproduced from its original inputs.
package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"techlens/pkg/domain/interfaces"
	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
)

type archiver struct {
	client *storage.Client
	bucket string
}

// NewArchiver creates a Cloud Storage backed upload archiver
func NewArchiver(ctx context.Context, bucket string) (interfaces.UploadArchiver, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &archiver{
		client: client,
		bucket: bucket,
	}, nil
}

// Archive writes the upload under uploads/<analysis-id>/<filename>
func (a *archiver) Archive(ctx context.Context, id types.AnalysisID, upload *model.Upload) error {
	object := fmt.Sprintf("uploads/%s/%s", id, upload.Name)

	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	w.ContentType = upload.ContentType

	if _, err := w.Write(upload.Data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write upload", goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize upload", goerr.V("object", object))
	}
	return nil
}
