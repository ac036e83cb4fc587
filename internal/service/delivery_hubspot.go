package service

import (
	"context"
	"errors"
	"sort"

	"github.com/stitch/backend/internal/model"
	"github.com/stitch/backend/pkg/hubspot"
)

// HubSpotBackend upserts a contact from the submission fields. Single
// synchronous attempt, bounded by the client's timeout.
type HubSpotBackend struct {
	client hubspot.Client
}

// NewHubSpotBackend creates the HubSpot delivery backend.
func NewHubSpotBackend(client hubspot.Client) *HubSpotBackend {
	return &HubSpotBackend{client: client}
}

var _ Backend = (*HubSpotBackend)(nil)

func (b *HubSpotBackend) Name() string { return "hubspot" }

// Deliver builds a property list from all forwarded fields and issues one
// contact-upsert call. A missing email is a validation fault of the
// submission, not a transport problem.
func (b *HubSpotBackend) Deliver(ctx context.Context, sub *model.Submission) error {
	if sub.Email() == "" {
		return model.NewError(model.KindValidation, "email is required for hubspot delivery")
	}

	names := make([]string, 0, len(sub.Fields))
	for name := range sub.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]hubspot.Property, 0, len(names))
	for _, name := range names {
		props = append(props, hubspot.Property{Name: name, Value: sub.Fields[name]})
	}

	err := b.client.UpsertContact(ctx, props)
	if err == nil {
		return nil
	}

	if errors.Is(err, hubspot.ErrNotConfigured) {
		return model.WrapError(model.KindConfigurationMissing, "hubspot api key not configured", err)
	}
	var statusErr *hubspot.StatusError
	if errors.As(err, &statusErr) {
		return model.WrapError(model.KindRemoteRejected, "hubspot rejected the contact upsert", err)
	}
	return model.WrapError(model.KindTransport, "hubspot request failed", err)
}
