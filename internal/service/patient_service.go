package service

import (
	"context"
	"errors"
	"time"

	"clinicore/internal/apierror"
	"clinicore/internal/dto"
	"clinicore/internal/model"
	"clinicore/internal/repository"

	"gorm.io/gorm"
)

// PatientService manages patient records keyed by the caller-assigned id.
type PatientService interface {
	Create(ctx context.Context, req dto.CreatePatientRequest) (*dto.PatientResponse, error)
	List(ctx context.Context) ([]dto.PatientResponse, error)
	Get(ctx context.Context, patientID string) (*dto.PatientResponse, error)
	Update(ctx context.Context, patientID string, req dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, patientID string) error
}

type patientService struct {
	repo repository.PatientRepository
}

func NewPatientService(repo repository.PatientRepository) PatientService {
	return &patientService{repo: repo}
}

func (s *patientService) Create(ctx context.Context, req dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if _, err := s.repo.FindByPatientID(ctx, req.ID); err == nil {
		return nil, apierror.Conflict("Patient id already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.Patient{
		PatientID: req.ID,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		Date:      req.Date,
		Treatment: req.Treatment,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return patientToResponse(p), nil
}

func (s *patientService) List(ctx context.Context) ([]dto.PatientResponse, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		resp[i] = *patientToResponse(&patients[i])
	}
	return resp, nil
}

func (s *patientService) Get(ctx context.Context, patientID string) (*dto.PatientResponse, error) {
	p, err := s.repo.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, apierror.NotFound("Patient not found.")
	}
	return patientToResponse(p), nil
}

// Update is a partial merge: only supplied fields change.
func (s *patientService) Update(ctx context.Context, patientID string, req dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	p, err := s.repo.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, apierror.NotFound("Patient not found.")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	if req.Treatment != nil {
		p.Treatment = req.Treatment
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return patientToResponse(p), nil
}

func (s *patientService) Delete(ctx context.Context, patientID string) error {
	n, err := s.repo.Delete(ctx, patientID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierror.NotFound("Patient not found.")
	}
	return nil
}

func patientToResponse(p *model.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:        p.PatientID,
		Name:      p.Name,
		Phone:     p.Phone,
		Address:   p.Address,
		Date:      p.Date,
		Treatment: p.Treatment,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
