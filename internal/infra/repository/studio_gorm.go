package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/models"
	"github.com/BruksfildServices01/photo-studio/internal/timezone"
)

type StudioGormRepository struct {
	db *gorm.DB
}

func NewStudioGormRepository(db *gorm.DB) *StudioGormRepository {
	return &StudioGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *StudioGormRepository) ListClients(ctx context.Context) ([]studio.Client, error) {
	var rows []models.Client
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]studio.Client, len(rows))
	for i := range rows {
		out[i] = toClient(rows[i])
	}
	return out, nil
}

func (r *StudioGormRepository) GetClient(ctx context.Context, id string) (*studio.Client, error) {
	if !validID(id) {
		return nil, studio.ErrNotFound
	}

	var row models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}

	c := toClient(row)
	return &c, nil
}

func (r *StudioGormRepository) CreateClient(ctx context.Context, c studio.Client) (*studio.Client, error) {
	row := fromClient(c)
	row.ID = ""

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	out := toClient(row)
	return &out, nil
}

func (r *StudioGormRepository) UpdateClient(ctx context.Context, id string, patch studio.ClientPatch) (*studio.Client, error) {
	if !validID(id) {
		return nil, studio.ErrNotFound
	}

	updates := clientUpdates(patch)
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Client{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, mapNotFound(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, studio.ErrNotFound
		}
	}

	return r.GetClient(ctx, id)
}

func (r *StudioGormRepository) DeleteClient(ctx context.Context, id string) error {
	if !validID(id) {
		return studio.ErrNotFound
	}

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Client{})
	if res.Error != nil {
		return mapNotFound(res.Error)
	}
	if res.RowsAffected == 0 {
		return studio.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Session
// --------------------------------------------------

func (r *StudioGormRepository) ListSessions(ctx context.Context) ([]studio.Session, error) {
	var rows []models.Session
	if err := r.db.WithContext(ctx).
		Order("date ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSessions(rows), nil
}

func (r *StudioGormRepository) ListSessionsByClient(ctx context.Context, clientID string) ([]studio.Session, error) {
	if !validID(clientID) {
		return []studio.Session{}, nil
	}

	var rows []models.Session
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSessions(rows), nil
}

func (r *StudioGormRepository) GetSession(ctx context.Context, id string) (*studio.Session, error) {
	if !validID(id) {
		return nil, studio.ErrNotFound
	}

	var row models.Session
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}

	s := toSession(row)
	return &s, nil
}

func (r *StudioGormRepository) CreateSession(ctx context.Context, s studio.Session) (*studio.Session, error) {
	row, err := fromSession(s)
	if err != nil {
		return nil, err
	}
	row.ID = ""

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	out := toSession(row)
	return &out, nil
}

func (r *StudioGormRepository) UpdateSession(ctx context.Context, id string, patch studio.SessionPatch) (*studio.Session, error) {
	if !validID(id) {
		return nil, studio.ErrNotFound
	}

	updates, err := sessionUpdates(patch)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Session{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, mapNotFound(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, studio.ErrNotFound
		}
	}

	return r.GetSession(ctx, id)
}

func (r *StudioGormRepository) DeleteSession(ctx context.Context, id string) error {
	if !validID(id) {
		return studio.ErrNotFound
	}

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Session{})
	if res.Error != nil {
		return mapNotFound(res.Error)
	}
	if res.RowsAffected == 0 {
		return studio.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Mapeamento linha <-> domínio
// --------------------------------------------------

// pgInvalidText é o SQLSTATE de texto que não converte para o tipo da
// coluna (id que não é uuid).
const pgInvalidText = "22P02"

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return studio.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidText {
		return studio.ErrNotFound
	}
	return err
}

// validID: as chaves das tabelas são uuid; qualquer outra coisa não existe.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toClient(row models.Client) studio.Client {
	return studio.Client{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Address:   row.Address,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func fromClient(c studio.Client) models.Client {
	return models.Client{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		Notes:   c.Notes,
	}
}

// toSession é o único ponto onde a coluna date vira "YYYY-MM-DD".
func toSession(row models.Session) studio.Session {
	return studio.Session{
		ID:            row.ID,
		ClientID:      row.ClientID,
		ClientName:    row.ClientName,
		Type:          studio.SessionType(row.Type),
		Date:          row.Date.Format(timezone.DateLayout),
		Time:          row.Time,
		Duration:      row.Duration,
		Location:      row.Location,
		Value:         row.Value,
		Status:        studio.Status(row.Status),
		PaymentStatus: studio.PaymentStatus(row.PaymentStatus),
		Notes:         row.Notes,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toSessions(rows []models.Session) []studio.Session {
	out := make([]studio.Session, len(rows))
	for i := range rows {
		out[i] = toSession(rows[i])
	}
	return out
}

func fromSession(s studio.Session) (models.Session, error) {
	date, err := parseStoredDate(s.Date)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{
		ID:            s.ID,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		Type:          string(s.Type),
		Date:          date,
		Time:          s.Time,
		Duration:      s.Duration,
		Location:      s.Location,
		Value:         s.Value,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		Notes:         s.Notes,
	}, nil
}

func parseStoredDate(s string) (time.Time, error) {
	d, err := timezone.ParseDate(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("session date %q: %w", s, err)
	}
	return d, nil
}

func clientUpdates(p studio.ClientPatch) map[string]any {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	return updates
}

func sessionUpdates(p studio.SessionPatch) (map[string]any, error) {
	updates := map[string]any{}
	if p.ClientID != nil {
		updates["client_id"] = *p.ClientID
	}
	if p.ClientName != nil {
		updates["client_name"] = *p.ClientName
	}
	if p.Type != nil {
		updates["type"] = string(*p.Type)
	}
	if p.Date != nil {
		d, err := parseStoredDate(*p.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = d
	}
	if p.Time != nil {
		updates["time"] = *p.Time
	}
	if p.Duration != nil {
		updates["duration"] = *p.Duration
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Value != nil {
		updates["value"] = *p.Value
	}
	if p.Status != nil {
		updates["status"] = string(*p.Status)
	}
	if p.PaymentStatus != nil {
		updates["payment_status"] = string(*p.PaymentStatus)
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	return updates, nil
}

// Compile-time check
var _ studio.Repository = (*StudioGormRepository)(nil)
