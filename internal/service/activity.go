package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"orgcatalog.app/catalog/common/id"
	"orgcatalog.app/catalog/common/logger"
	"orgcatalog.app/catalog/internal/activitytree"
	"orgcatalog.app/catalog/internal/model"
	"orgcatalog.app/catalog/internal/observability"
	"orgcatalog.app/catalog/internal/queue"
	"orgcatalog.app/catalog/internal/store"
)

type ActivityService interface {
	Create(ctx context.Context, name string, parentID *int64) (*model.Activity, error)
	GetByID(ctx context.Context, id int64) (*model.Activity, error)
	List(ctx context.Context) ([]model.Activity, error)
	Update(ctx context.Context, id int64, update model.ActivityUpdate) (*model.Activity, error)
	Delete(ctx context.Context, id int64) error
}

type activityService struct {
	tx       TxRunner
	producer queue.Producer
}

func NewActivityService(tx TxRunner, producer queue.Producer) ActivityService {
	return &activityService{tx: tx, producer: producer}
}

func (s *activityService) Create(ctx context.Context, name string, parentID *int64) (*model.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("activity name is required: %w", ErrInvalidArgument)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ActivityName: &name, Component: "catalog.service.activities"})

	activity := &model.Activity{
		ID:       id.New(),
		Name:     name,
		ParentID: parentID,
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		if parentID != nil {
			if err := checkHierarchy(activitytree.CheckParent(ctx, stores.Activities(), *parentID)); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return missingReference("parent activity", *parentID, nil)
				}
				return err
			}
		}
		return stores.Activities().Create(ctx, activity)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to create activity", "error", err)
		return nil, fmt.Errorf("creating activity: %w", err)
	}

	slog.InfoContext(ctx, "activity created", "activity_id", activity.ID)
	publish(ctx, s.producer, queue.CatalogEvent{Type: queue.EventActivityCreated, EntityID: activity.ID, Name: activity.Name})
	return activity, nil
}

func (s *activityService) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	activity, err := lookup(ctx, s.tx, func(ctx context.Context, stores StoreProvider) (*model.Activity, error) {
		return stores.Activities().GetByID(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

func (s *activityService) List(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		var err error
		activities, err = stores.Activities().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return activities, nil
}

// Update renames and/or reparents an activity. A reparent is checked against
// the same depth limit as an insert and may not create a cycle.
func (s *activityService) Update(ctx context.Context, id int64, update model.ActivityUpdate) (*model.Activity, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("activity name cannot be empty: %w", ErrInvalidArgument)
		}
		update.Name = &name
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ActivityID: &id, Component: "catalog.service.activities"})

	var updated *model.Activity
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		if _, err := stores.Activities().GetByID(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrActivityNotFound
			}
			return err
		}

		if update.Reparents() {
			newParent := update.ParentID
			if update.ClearParent {
				newParent = nil
			}
			if err := checkHierarchy(activitytree.CheckMove(ctx, stores.Activities(), id, newParent)); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return missingReference("parent activity", *newParent, nil)
				}
				return err
			}
		}

		var err error
		updated, err = stores.Activities().Update(ctx, id, update)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating activity: %w", err)
	}

	slog.InfoContext(ctx, "activity updated")
	return updated, nil
}

// Delete removes an activity. Activities that still have children are
// rejected by the schema with a constraint violation.
func (s *activityService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		return stores.Activities().Delete(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrActivityNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}

	slog.InfoContext(ctx, "activity deleted", "activity_id", id)
	return nil
}

// checkHierarchy counts hierarchy rejections before handing the error back.
func checkHierarchy(err error) error {
	switch {
	case errors.Is(err, activitytree.ErrDepthExceeded):
		observability.RecordHierarchyRejection("depth")
	case errors.Is(err, activitytree.ErrCycle):
		observability.RecordHierarchyRejection("cycle")
	}
	return err
}
