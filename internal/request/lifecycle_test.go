package request_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"smg-portal/internal/events"
	"smg-portal/internal/notification"
	notificationMock "smg-portal/internal/notification/mock"
	"smg-portal/internal/request"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	requestID = "9b2f7c1e-4d1a-4c55-a1a0-5b8f0f0e7a11"
	ownerID   = "1c6f3b1e-0d0e-4a3c-9a9c-0b5d3f8e2a01"
)

func snapshot(status string, approvers ...events.Approver) *events.RequestSnapshot {
	return &events.RequestSnapshot{
		ID:           requestID,
		UserID:       ownerID,
		EmployeeName: "Asha Rao",
		RequestType:  "leave",
		Title:        "Annual leave",
		Status:       status,
		Approvers:    approvers,
	}
}

func TestLifecycle_OnCreated(t *testing.T) {
	ctx := context.Background()

	ownerMsg := notification.Message{
		UserID:   ownerID,
		Title:    "Request Submitted",
		Message:  "Your leave request has been submitted successfully.",
		Type:     notification.TypeSuccess,
		Category: notification.CategoryRequest,
		Key:      notification.IdempotencyKey(events.RequestCreated, requestID, "owner", ownerID),
	}
	approverMsg := func(pos int, uid string) notification.Message {
		return notification.Message{
			UserID:         uid,
			Title:          "New Request for Approval",
			Message:        "Asha Rao submitted leave: Annual leave",
			Type:           notification.TypeInfo,
			Category:       notification.CategoryApproval,
			ActionURL:      "/requests/" + requestID,
			ActionRequired: true,
			Key:            notification.IdempotencyKey(events.RequestCreated, requestID, "approver", strconv.Itoa(pos), uid),
		}
	}

	for _, n := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("%d approvers then owner", n), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := notificationMock.NewMockWriter(ctrl)
			lc := request.NewLifecycle(notifier)

			approvers := make([]events.Approver, n)
			calls := make([]any, 0, n+1)
			for i := range approvers {
				approvers[i] = events.Approver{UserID: fmt.Sprintf("a%d", i), Name: "Approver"}
				calls = append(calls, notifier.EXPECT().Send(ctx, approverMsg(i, approvers[i].UserID)).
					Return(notification.SendResult{Sent: true}, nil))
			}
			calls = append(calls, notifier.EXPECT().Send(ctx, ownerMsg).Return(notification.SendResult{Sent: true}, nil))
			gomock.InOrder(calls...)

			err := lc.OnCreated(ctx, events.RequestCreatedEvent{
				EventType: events.RequestCreated,
				RequestID: requestID,
				Request:   snapshot("pending", approvers...),
			})

			assert.NoError(t, err)
		})
	}

	t.Run("repeated approver is notified per entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := notificationMock.NewMockWriter(ctrl)
		gomock.InOrder(
			notifier.EXPECT().Send(ctx, approverMsg(0, "a0")).Return(notification.SendResult{Sent: true}, nil),
			notifier.EXPECT().Send(ctx, approverMsg(1, "a0")).Return(notification.SendResult{Sent: true}, nil),
			notifier.EXPECT().Send(ctx, ownerMsg).Return(notification.SendResult{Sent: true}, nil),
		)

		err := request.NewLifecycle(notifier).OnCreated(ctx, events.RequestCreatedEvent{
			RequestID: requestID,
			Request:   snapshot("pending", events.Approver{UserID: "a0"}, events.Approver{UserID: "a0"}),
		})

		assert.NoError(t, err)
		assert.NotEqual(t, approverMsg(0, "a0").Key, approverMsg(1, "a0").Key)
	})

	t.Run("missing snapshot is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := notificationMock.NewMockWriter(ctrl)

		err := request.NewLifecycle(notifier).OnCreated(ctx, events.RequestCreatedEvent{RequestID: requestID})

		assert.NoError(t, err)
	})

	t.Run("approver failure stops before owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := notificationMock.NewMockWriter(ctrl)
		notifier.EXPECT().Send(ctx, gomock.Any()).Return(notification.SendResult{}, errors.New("store down"))

		err := request.NewLifecycle(notifier).OnCreated(ctx, events.RequestCreatedEvent{
			RequestID: requestID,
			Request:   snapshot("pending", events.Approver{UserID: "a0"}),
		})

		assert.Error(t, err)
	})

	t.Run("duplicate delivery is absorbed by the writer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := notificationMock.NewMockWriter(ctrl)
		notifier.EXPECT().Send(ctx, ownerMsg).Return(notification.SendResult{Sent: false}, nil)

		err := request.NewLifecycle(notifier).OnCreated(ctx, events.RequestCreatedEvent{
			RequestID: requestID,
			Request:   snapshot("pending"),
		})

		assert.NoError(t, err)
	})
}

func TestLifecycle_OnUpdated(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		status  string
		typ     string
		message string
	}{
		{"approved", notification.TypeSuccess, "Your leave request has been approved!"},
		{"rejected", notification.TypeError, "Your leave request has been rejected."},
		{"in_progress", notification.TypeInfo, "Your leave request is being processed."},
		{"completed", notification.TypeSuccess, "Your leave request has been completed!"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := notificationMock.NewMockWriter(ctrl)
			notifier.EXPECT().Send(ctx, notification.Message{
				UserID:    ownerID,
				Title:     "Request Status Updated",
				Message:   tt.message,
				Type:      tt.typ,
				Category:  notification.CategoryRequest,
				ActionURL: "/requests/" + requestID,
				Key:       notification.IdempotencyKey(events.RequestUpdated, requestID, tt.status, ownerID),
			}).Return(notification.SendResult{Sent: true}, nil)

			err := request.NewLifecycle(notifier).OnUpdated(ctx, events.RequestUpdatedEvent{
				RequestID: requestID,
				Before:    snapshot("pending"),
				After:     snapshot(tt.status),
			})

			assert.NoError(t, err)
		})
	}

	noSend := []struct {
		name string
		evt  events.RequestUpdatedEvent
	}{
		{"unchanged status", events.RequestUpdatedEvent{Before: snapshot("pending"), After: snapshot("pending")}},
		{"missing before", events.RequestUpdatedEvent{After: snapshot("approved")}},
		{"missing after", events.RequestUpdatedEvent{Before: snapshot("pending")}},
		{"unmapped status", events.RequestUpdatedEvent{Before: snapshot("approved"), After: snapshot("pending")}},
		{"unknown status", events.RequestUpdatedEvent{Before: snapshot("pending"), After: snapshot("archived")}},
	}
	for _, tt := range noSend {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := notificationMock.NewMockWriter(ctrl)

			err := request.NewLifecycle(notifier).OnUpdated(ctx, tt.evt)

			assert.NoError(t, err)
		})
	}

	t.Run("writer failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := notificationMock.NewMockWriter(ctrl)
		notifier.EXPECT().Send(ctx, gomock.Any()).Return(notification.SendResult{}, errors.New("store down"))

		err := request.NewLifecycle(notifier).OnUpdated(ctx, events.RequestUpdatedEvent{
			Before: snapshot("pending"),
			After:  snapshot("approved"),
		})

		assert.Error(t, err)
	})
}
