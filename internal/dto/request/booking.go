package request

import (
	"strings"

	"padel-booking/internal/data/entity"
	"padel-booking/pkg/utils"
)

type SelectCourtRequest struct {
	CourtID string `form:"court_id" validate:"required,numeric"`
}

type SelectSlotRequest struct {
	Date      string `form:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `form:"start_time" validate:"required"`
	EndTime   string `form:"end_time" validate:"required"`
}

func (r SelectSlotRequest) Slot() entity.Slot {
	return entity.Slot{StartTime: r.StartTime, EndTime: r.EndTime}
}

type UserDetailsRequest struct {
	Name  string `form:"name" json:"name" validate:"required,max=100"`
	Email string `form:"email" json:"email" validate:"required,contact_email"`
	Phone string `form:"phone" json:"phone" validate:"required,phone"`
}

// Normalize trims the values the way they are stored.
func (r *UserDetailsRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r UserDetailsRequest) ToEntity() entity.UserDetails {
	return entity.UserDetails{
		Name:  r.Name,
		Email: r.Email,
		Phone: utils.NormalizePhone(r.Phone),
	}
}

// UserDetailsFromEntity prefills the form with already collected details.
func UserDetailsFromEntity(d *entity.UserDetails) UserDetailsRequest {
	if d == nil {
		return UserDetailsRequest{}
	}
	return UserDetailsRequest{Name: d.Name, Email: d.Email, Phone: d.Phone}
}
