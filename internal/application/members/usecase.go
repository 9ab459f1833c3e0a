// Package members verwaltet Mitglieder und den Artikelkatalog. Beides ist
// dünnes CRUD ohne eigene Geschäftslogik; die Regeln sitzen in Fakturierung
// und SEPA.
package members

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/domain"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// MemberUseCase bündelt die Mitgliederverwaltung eines Dojos.
type MemberUseCase struct {
	memberRepo repository.MemberRepository
}

// NewMemberUseCase baut den Use-Case.
func NewMemberUseCase(memberRepo repository.MemberRepository) *MemberUseCase {
	return &MemberUseCase{memberRepo: memberRepo}
}

// CreateMember legt ein Mitglied an. Eintritt fehlt → heutiges Datum.
func (uc *MemberUseCase) CreateMember(ctx context.Context, dojoID string, in dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	vorname := strings.TrimSpace(in.Vorname)
	nachname := strings.TrimSpace(in.Nachname)
	if nachname == "" {
		return nil, domain.ErrInvalidInput
	}

	eintritt := time.Now().UTC().Truncate(24 * time.Hour)
	if in.Eintritt != "" {
		parsed, err := time.Parse(dateLayout, in.Eintritt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		eintritt = parsed
	}

	now := time.Now().UTC()
	member := &entity.Member{
		ID:        uuid.NewString(),
		DojoID:    dojoID,
		Vorname:   vorname,
		Nachname:  nachname,
		Email:     strings.TrimSpace(strings.ToLower(in.Email)),
		Eintritt:  eintritt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return toMemberResponse(member), nil
}

// GetMember liefert ein Mitglied des Dojos.
func (uc *MemberUseCase) GetMember(ctx context.Context, dojoID, id string) (*dto.MemberResponse, error) {
	member, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrNotFound
	}
	if member.DojoID != dojoID {
		return nil, domain.ErrForbidden
	}
	return toMemberResponse(member), nil
}

// ListMembers listet die Mitglieder des Dojos.
func (uc *MemberUseCase) ListMembers(ctx context.Context, dojoID string, page dto.PageRequest) ([]*dto.MemberResponse, error) {
	page.DefaultPage()
	members, err := uc.memberRepo.ListByDojo(ctx, dojoID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.MemberResponse, 0, len(members))
	for _, m := range members {
		result = append(result, toMemberResponse(m))
	}
	return result, nil
}

func toMemberResponse(m *entity.Member) *dto.MemberResponse {
	resp := &dto.MemberResponse{
		ID:       m.ID,
		DojoID:   m.DojoID,
		Vorname:  m.Vorname,
		Nachname: m.Nachname,
		Email:    m.Email,
		Eintritt: m.Eintritt.Format(dateLayout),
	}
	if m.Austritt != nil {
		resp.Austritt = m.Austritt.Format(dateLayout)
	}
	return resp
}

// ArticleUseCase verwaltet den Artikelkatalog (Beiträge, Gebühren, Ausrüstung).
type ArticleUseCase struct {
	articleRepo repository.ArticleRepository
}

// NewArticleUseCase baut den Use-Case.
func NewArticleUseCase(articleRepo repository.ArticleRepository) *ArticleUseCase {
	return &ArticleUseCase{articleRepo: articleRepo}
}

// CreateArticle legt einen Katalogartikel an. VATRate fehlt → Regelsatz 19 %.
func (uc *ArticleUseCase) CreateArticle(ctx context.Context, dojoID string, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Preis.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	vatRate := in.VATRate
	if vatRate.IsZero() {
		vatRate = decimal.NewFromInt(19)
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	article := &entity.Article{
		ID:           uuid.NewString(),
		DojoID:       dojoID,
		Name:         name,
		Preis:        in.Preis,
		VATRate:      vatRate,
		Rabattfaehig: in.Rabattfaehig,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// ListArticles listet den Katalog des Dojos.
func (uc *ArticleUseCase) ListArticles(ctx context.Context, dojoID string, page dto.PageRequest) ([]*dto.ArticleResponse, error) {
	page.DefaultPage()
	articles, err := uc.articleRepo.ListByDojo(ctx, dojoID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		result = append(result, toArticleResponse(a))
	}
	return result, nil
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:           a.ID,
		DojoID:       a.DojoID,
		Name:         a.Name,
		Preis:        a.Preis,
		VATRate:      a.VATRate,
		Rabattfaehig: a.Rabattfaehig,
	}
}
