package usecase

import (
	"context"
	"strings"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/mailer"
	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

// InquiryUsecase handles customer inquiries: contact-form submission with a
// notification mail, the new→read→replied status flow and deletion.
type InquiryUsecase struct {
	repo     domain.InquiryRepository
	vehicles domain.VehicleRepository
	mail     mailer.Mailer
	events   EventPublisher
	logger   *logger.Logger
}

func NewInquiryUsecase(repo domain.InquiryRepository, vehicles domain.VehicleRepository, mail mailer.Mailer, events EventPublisher, log *logger.Logger) *InquiryUsecase {
	return &InquiryUsecase{
		repo:     repo,
		vehicles: vehicles,
		mail:     mail,
		events:   events,
		logger:   log,
	}
}

// Submit validates and stores a contact-form inquiry, then notifies the
// dealership inbox. The mail is best effort: the inquiry is already
// persisted and is not rolled back when SMTP fails.
func (uc *InquiryUsecase) Submit(ctx context.Context, inquiry *domain.Inquiry) error {
	if strings.TrimSpace(inquiry.Name) == "" ||
		strings.TrimSpace(inquiry.Email) == "" ||
		strings.TrimSpace(inquiry.Message) == "" {
		return domain.ErrInvalidInquiryData
	}

	var vehicleTitle string
	if inquiry.VehicleID != "" {
		vehicle, err := uc.vehicles.FindByID(ctx, inquiry.VehicleID)
		if err == nil {
			vehicleTitle = vehicle.Title()
		}
	}

	inquiry.Status = domain.InquiryNew
	if err := uc.repo.Create(ctx, inquiry); err != nil {
		uc.logger.Error("failed to store inquiry", "error", err)
		return err
	}
	uc.logger.Info("inquiry received", "inquiry_id", inquiry.ID, "subject", inquiry.Subject)

	if uc.events != nil {
		if err := uc.events.Publish(ctx, SubjectInquiryCreated, inquiry); err != nil {
			uc.logger.Warn("failed to publish inquiry event", "inquiry_id", inquiry.ID, "error", err)
		}
	}
	if uc.mail != nil {
		if err := uc.mail.SendInquiryNotification(inquiry, vehicleTitle); err != nil {
			uc.logger.Warn("inquiry stored but notification mail failed", "inquiry_id", inquiry.ID, "error", err)
		}
	}
	return nil
}

// List returns all inquiries, newest first. A not-yet-provisioned inquiry
// collection yields an empty list, handled at the repository boundary.
func (uc *InquiryUsecase) List(ctx context.Context) ([]*domain.Inquiry, error) {
	return uc.repo.FindAll(ctx)
}

// View fetches one inquiry for the admin and transitions new→read.
func (uc *InquiryUsecase) View(ctx context.Context, id string) (*domain.Inquiry, error) {
	inquiry, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inquiry.Status == domain.InquiryNew {
		if err := uc.repo.UpdateStatus(ctx, id, domain.InquiryRead); err != nil {
			uc.logger.Warn("failed to mark inquiry read", "inquiry_id", id, "error", err)
		} else {
			inquiry.Status = domain.InquiryRead
		}
	}
	return inquiry, nil
}

// Reply sends the admin's answer to the customer and marks the inquiry
// replied. The status is only advanced after the mail went out.
func (uc *InquiryUsecase) Reply(ctx context.Context, id, body string) error {
	if strings.TrimSpace(body) == "" {
		return domain.ErrInvalidInquiryData
	}
	inquiry, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if uc.mail != nil {
		if err := uc.mail.SendInquiryReply(inquiry, body); err != nil {
			return err
		}
	}
	if err := uc.repo.UpdateStatus(ctx, id, domain.InquiryReplied); err != nil {
		return err
	}
	uc.logger.Info("inquiry replied", "inquiry_id", id)
	return nil
}

// Delete removes an inquiry.
func (uc *InquiryUsecase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
