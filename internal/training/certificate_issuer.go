package training

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"smg-portal/internal/certificate"
	"smg-portal/internal/events"
	"smg-portal/internal/notification"
	"smg-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CertificateIssuer issues a certificate when an enrollment is completed
// with a pass. Every step tolerates being repeated for the same event.
type CertificateIssuer struct {
	db       *sql.DB
	repo     Repository
	store    certificate.Store
	notifier notification.Writer
	baseURL  string
	logger   *zap.Logger
}

func NewCertificateIssuer(
	db *sql.DB,
	repo Repository,
	store certificate.Store,
	notifier notification.Writer,
	baseURL string,
	logger ...*zap.Logger,
) *CertificateIssuer {
	l := zap.L().Named("training.certificate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.certificate")
	}
	return &CertificateIssuer{
		db:       db,
		repo:     repo,
		store:    store,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   l,
	}
}

// CertificateURL is the public address of the certificate of an enrollment.
func (c *CertificateIssuer) CertificateURL(enrollmentID string) string {
	return c.baseURL + "/" + enrollmentID
}

// ShouldIssue reports whether the change completes a passed enrollment that
// has no certificate yet.
func ShouldIssue(before, after *events.EnrollmentSnapshot) bool {
	if before == nil || after == nil {
		return false
	}
	return before.EnrollmentStatus != EnrollmentCompleted &&
		after.EnrollmentStatus == EnrollmentCompleted &&
		after.Passed &&
		!after.CertificateIssued
}

func (c *CertificateIssuer) OnEnrollmentUpdated(ctx context.Context, evt events.EnrollmentUpdatedEvent) error {
	log := contextutil.GetLogger(ctx, c.logger)
	if !ShouldIssue(evt.Before, evt.After) {
		return nil
	}

	after := evt.After
	enrollmentID := after.ID
	if enrollmentID == "" {
		enrollmentID = evt.EnrollmentID
	}
	userID, err := uuid.Parse(after.UserID)
	if err != nil {
		log.Warn("certificate skipped, enrollment has no valid user", zap.String("enrollment_id", enrollmentID))
		return nil
	}
	url := c.CertificateURL(enrollmentID)
	now := time.Now().UTC()

	name, err := c.repo.UserFullName(ctx, after.UserID)
	if err != nil {
		log.Error("certificate load recipient failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return err
	}

	hours := 0.0
	if after.HoursCompleted != nil {
		hours = *after.HoursCompleted
	}
	issuedOn := now
	if after.CompletionDate != nil {
		issuedOn = *after.CompletionDate
	}
	pdf, err := certificate.RenderPDF(certificate.Certificate{
		EnrollmentID:  enrollmentID,
		RecipientName: name,
		Title:         after.SessionTitle,
		Hours:         hours,
		Score:         after.AssessmentScore,
		IssuedOn:      issuedOn,
		URL:           url,
	})
	if err != nil {
		log.Error("certificate render failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return err
	}
	if err := c.store.Put(ctx, certificate.ObjectName(enrollmentID), certificate.ContentTypePDF, pdf); err != nil {
		log.Error("certificate store failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return err
	}

	if err := c.record(ctx, enrollmentID, userID, url, now, after); err != nil {
		return err
	}

	_, err = c.notifier.Send(ctx, notification.Message{
		UserID:    after.UserID,
		Title:     "Certificate Issued!",
		Message:   fmt.Sprintf("Congratulations! Your certificate for \"%s\" is ready.", after.SessionTitle),
		Type:      notification.TypeSuccess,
		Category:  notification.CategoryTraining,
		ActionURL: url,
		Key:       notification.IdempotencyKey("certificate", enrollmentID, after.UserID),
	})
	if err != nil {
		log.Error("certificate notification failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return err
	}

	log.Info("certificate issued", zap.String("enrollment_id", enrollmentID), zap.String("url", url))
	return nil
}

// record marks the enrollment and appends the history entry in one transaction.
func (c *CertificateIssuer) record(ctx context.Context, enrollmentID string, userID uuid.UUID, url string, now time.Time, after *events.EnrollmentSnapshot) error {
	log := contextutil.GetLogger(ctx, c.logger)

	sessionID, err := uuid.Parse(after.SessionID)
	if err != nil {
		return fmt.Errorf("enrollment %s: invalid session id %q", enrollmentID, after.SessionID)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("certificate begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := c.repo.WithTx(tx)
	marked, err := qtx.MarkCertificateIssued(ctx, enrollmentID, url, now)
	if err != nil {
		log.Error("certificate mark enrollment failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return err
	}

	completed := now
	if after.CompletionDate != nil {
		completed = *after.CompletionDate
	}
	entry := &HistoryEntry{
		ID:             uuid.New(),
		UserID:         userID,
		SessionID:      sessionID,
		Title:          after.SessionTitle,
		CompletedDate:  &completed,
		Duration:       after.Duration,
		CertificateURL: url,
		CreatedAt:      now,
	}
	if after.HoursCompleted != nil {
		entry.HoursCompleted = *after.HoursCompleted
	}
	if after.AssessmentScore != nil {
		entry.Score = *after.AssessmentScore
	}
	inserted, err := qtx.InsertHistory(ctx, entry)
	if err != nil {
		log.Error("certificate history insert failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("certificate commit failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return err
	}
	if !marked || !inserted {
		log.Debug("certificate already recorded",
			zap.String("enrollment_id", enrollmentID),
			zap.Bool("marked", marked),
			zap.Bool("history_inserted", inserted),
		)
	}
	return nil
}
