package sepa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/domain"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
	pkgsepa "github.com/budoverein/dojokasse/pkg/sepa"
)

// MandateUseCase: Lebenszyklus der SEPA-Lastschriftmandate.
type MandateUseCase struct {
	mandateRepo repository.MandateRepository
	memberRepo  repository.MemberRepository
}

// NewMandateUseCase baut den Use Case.
func NewMandateUseCase(mandateRepo repository.MandateRepository, memberRepo repository.MemberRepository) *MandateUseCase {
	return &MandateUseCase{mandateRepo: mandateRepo, memberRepo: memberRepo}
}

// CreateMandate legt ein Mandat im Status aktiv an. IBAN wird normalisiert und
// per MOD-97 geprüft; die Mandatsreferenz wird einmalig vergeben und ist danach
// unveränderlich (sie steht auf dem unterschriebenen Papiermandat).
func (uc *MandateUseCase) CreateMandate(ctx context.Context, dojoID string, in dto.CreateMandateRequest) (*dto.MandateResponse, error) {
	member, err := uc.memberRepo.GetByID(ctx, in.MemberID)
	if err != nil || member == nil {
		return nil, domain.ErrNotFound
	}
	if member.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}

	iban := pkgsepa.NormalizeIBAN(in.IBAN)
	if !pkgsepa.ValidIBAN(iban) {
		return nil, domain.ErrInvalidInput
	}
	bic := strings.ToUpper(strings.TrimSpace(in.BIC))
	if !pkgsepa.ValidBIC(bic) {
		return nil, domain.ErrInvalidInput
	}
	unterschrieben, err := time.Parse("2006-01-02", in.Unterschrieben)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	id := uuid.New().String()
	now := time.Now()
	m := &entity.Mandate{
		ID:             id,
		DojoID:         dojoID,
		MemberID:       in.MemberID,
		Kontoinhaber:   strings.TrimSpace(in.Kontoinhaber),
		IBAN:           iban,
		BIC:            bic,
		Referenz:       mandateReferenz(unterschrieben, id),
		Unterschrieben: unterschrieben,
		Status:         entity.MandateStatusAktiv,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.mandateRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMandateResponse(m), nil
}

// UpdateStatus führt einen Mandats-Statusübergang aus (pausieren, reaktivieren,
// widerrufen). widerrufen ist terminal.
func (uc *MandateUseCase) UpdateStatus(ctx context.Context, dojoID, id string, in dto.UpdateMandateStatusRequest) (*dto.MandateResponse, error) {
	m, err := uc.mandateRepo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, domain.ErrNotFound
	}
	if m.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}
	if err := m.TransitionTo(in.Status); err != nil {
		return nil, err
	}
	if err := uc.mandateRepo.UpdateStatus(ctx, id, m.Status); err != nil {
		return nil, err
	}
	return toMandateResponse(m), nil
}

// ListMandates liefert alle Mandate des Dojos.
func (uc *MandateUseCase) ListMandates(ctx context.Context, dojoID string) ([]*dto.MandateResponse, error) {
	ms, err := uc.mandateRepo.ListByDojo(ctx, dojoID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MandateResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMandateResponse(m))
	}
	return out, nil
}

// mandateReferenz baut die Mandatsreferenz: Jahr der Unterschrift plus ein
// kurzer, eindeutiger Suffix aus der ID.
func mandateReferenz(unterschrieben time.Time, id string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("M-%d-%s", unterschrieben.Year(), suffix)
}

func toMandateResponse(m *entity.Mandate) *dto.MandateResponse {
	return &dto.MandateResponse{
		ID:             m.ID,
		DojoID:         m.DojoID,
		MemberID:       m.MemberID,
		Kontoinhaber:   m.Kontoinhaber,
		IBAN:           m.IBAN,
		BIC:            m.BIC,
		Referenz:       m.Referenz,
		Unterschrieben: m.Unterschrieben.Format("2006-01-02"),
		Status:         m.Status,
	}
}
