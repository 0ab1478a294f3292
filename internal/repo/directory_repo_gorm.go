package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"salon-suite/internal/domain"
	"salon-suite/internal/feature/booking"
	"salon-suite/internal/feature/staff"
)

type DirectoryRepo struct{ db *gorm.DB }

func NewDirectoryRepo(db *gorm.DB) *DirectoryRepo { return &DirectoryRepo{db: db} }

func (r *DirectoryRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var rows []staff.LocationModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Location, 0, len(rows))
	for _, l := range rows {
		out = append(out, domain.Location{ID: l.ID, Name: l.Name, Address: l.Address, Active: l.Active})
	}
	return out, nil
}

func (r *DirectoryRepo) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	var rows []staff.StaffModel
	if err := r.db.WithContext(ctx).Preload("Assignments").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Staff, 0, len(rows))
	for _, s := range rows {
		locs := make([]string, 0, len(s.Assignments))
		for _, a := range s.Assignments {
			locs = append(locs, a.LocationID)
		}
		out = append(out, domain.Staff{
			ID: s.ID, UserID: s.UserID, Name: s.Name,
			JobTitle: s.JobTitle, Active: s.Active, Locations: locs,
		})
	}
	return out, nil
}

func (r *DirectoryRepo) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	var rows []booking.AppointmentModel
	if err := r.db.WithContext(ctx).Order("start_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Appointment, 0, len(rows))
	for _, a := range rows {
		out = append(out, domain.Appointment{
			ID: a.ID, ClientID: a.ClientID, StaffID: a.StaffID, LocationID: a.LocationID,
			Service: a.Service, Status: a.Status, StartAt: a.StartAt, EndAt: a.EndAt,
		})
	}
	return out, nil
}

// StaffLocations 登录签发 token 时取该账号名下员工的指派网点
func (r *DirectoryRepo) StaffLocations(ctx context.Context, userID string) ([]string, error) {
	var s staff.StaffModel
	err := r.db.WithContext(ctx).Preload("Assignments").Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	locs := make([]string, 0, len(s.Assignments))
	for _, a := range s.Assignments {
		locs = append(locs, a.LocationID)
	}
	return locs, nil
}
