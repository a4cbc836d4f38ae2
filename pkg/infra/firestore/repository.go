// Package firestore persists analyses in Google Cloud Firestore, one document
// per analysis keyed by its ID.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"techlens/pkg/domain/interfaces"
	"techlens/pkg/domain/model"
	"techlens/pkg/domain/types"
)

type repository struct {
	client     *firestore.Client
	collection string
}

// NewRepository connects to Firestore and returns an analysis repository
func NewRepository(ctx context.Context, projectID, collection string) (interfaces.AnalysisRepository, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client", goerr.V("project_id", projectID))
	}

	return &repository{
		client:     client,
		collection: collection,
	}, nil
}

func (r *repository) Put(ctx context.Context, analysis *model.Analysis) error {
	_, err := r.client.Collection(r.collection).Doc(analysis.ID.String()).Set(ctx, analysis)
	if err != nil {
		return goerr.Wrap(err, "failed to store analysis", goerr.V("analysis_id", analysis.ID))
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id types.AnalysisID) (*model.Analysis, error) {
	doc, err := r.client.Collection(r.collection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrAnalysisNotFound, "no such document", goerr.V("analysis_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get analysis", goerr.V("analysis_id", id))
	}

	var analysis model.Analysis
	if err := doc.DataTo(&analysis); err != nil {
		return nil, goerr.Wrap(err, "failed to decode analysis document", goerr.V("analysis_id", id))
	}
	return &analysis, nil
}

func (r *repository) List(ctx context.Context, limit int) ([]*model.Analysis, error) {
	iter := r.client.Collection(r.collection).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var results []*model.Analysis
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate analyses")
		}

		var analysis model.Analysis
		if err := doc.DataTo(&analysis); err != nil {
			return nil, goerr.Wrap(err, "failed to decode analysis document", goerr.V("doc_id", doc.Ref.ID))
		}
		results = append(results, &analysis)
	}
	return results, nil
}
