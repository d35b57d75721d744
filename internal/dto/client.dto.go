package dto

import domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"

type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (r CreateClientRequest) ToClient() domain.Client {
	return domain.Client{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Notes:   r.Notes,
	}
}

// UpdateClientRequest: campos ausentes no JSON não são alterados.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (r UpdateClientRequest) ToPatch() domain.ClientPatch {
	return domain.ClientPatch{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Notes:   r.Notes,
	}
}
