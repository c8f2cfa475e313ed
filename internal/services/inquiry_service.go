// internal/services/inquiry_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

// InquiryService runs the inquiry status lifecycle and the role-request
// review queue it can forward into.
type InquiryService struct {
	db *gorm.DB
}

type CreateInquiryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone_local"`
	Message string `json:"message" validate:"required"`
}

type ReplyRequest struct {
	Responder string `json:"responder" validate:"omitempty,max=100"`
	Message   string `json:"message" validate:"required"`
}

// Allowed primary-status transitions. Resolved and Rejected are terminal.
var inquiryTransitions = map[models.InquiryStatus][]models.InquiryStatus{
	models.InquiryStatusPending:    {models.InquiryStatusInProgress, models.InquiryStatusRejected},
	models.InquiryStatusInProgress: {models.InquiryStatusResolved, models.InquiryStatusRejected},
}

func NewInquiryService(db *gorm.DB) *InquiryService {
	return &InquiryService{db: db}
}

func (s *InquiryService) Create(req *CreateInquiryRequest) (*models.Inquiry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		if verrs := utils.GetValidationErrors(err); len(verrs) > 0 {
			for _, ve := range verrs {
				if ve.Field == "phone" {
					return nil, errors.New("Phone number must be 10 digits and start with 0")
				}
			}
		}
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	inquiry := &models.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Status:  models.InquiryStatusPending,
	}

	if err := s.db.Create(inquiry).Error; err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	return inquiry, nil
}

func (s *InquiryService) Get(id uuid.UUID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := s.db.Preload("Replies").First(&inquiry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("inquiry not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &inquiry, nil
}

func (s *InquiryService) List(params utils.PaginationParams, status models.InquiryStatus) ([]models.Inquiry, int64, error) {
	query := s.db.Model(&models.Inquiry{}).Preload("Replies")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(message) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "updated_at", "status", "name"})
	query = utils.ApplyPagination(query, params)

	var inquiries []models.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch inquiries: %w", err)
	}

	return inquiries, total, nil
}

// UpdateStatus moves the inquiry along the lifecycle, rejecting transitions
// the state machine does not allow.
func (s *InquiryService) UpdateStatus(id uuid.UUID, status models.InquiryStatus) (*models.Inquiry, error) {
	inquiry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range inquiryTransitions[inquiry.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("invalid status transition from %q to %q", inquiry.Status, status)
	}

	if err := s.db.Model(inquiry).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update inquiry status: %w", err)
	}

	inquiry.Status = status
	return inquiry, nil
}

// Reply appends one reply entry. Replying to a Pending inquiry
// auto-transitions it to In Progress.
func (s *InquiryService) Reply(id uuid.UUID, req *ReplyRequest) (*models.Inquiry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	inquiry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if inquiry.Terminal() {
		return nil, errors.New("cannot reply to a closed inquiry")
	}

	reply := &models.InquiryReply{
		InquiryID: inquiry.ID,
		Responder: req.Responder,
		Message:   req.Message,
	}

	if err := s.db.Create(reply).Error; err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	if inquiry.Status == models.InquiryStatusPending {
		if err := s.db.Model(inquiry).Update("status", models.InquiryStatusInProgress).Error; err != nil {
			return nil, fmt.Errorf("failed to update inquiry status: %w", err)
		}
		inquiry.Status = models.InquiryStatusInProgress
	}

	inquiry.Replies = append(inquiry.Replies, *reply)
	return inquiry, nil
}

// Forward records the target role in the forward history. Forwarding to the
// admin role additionally snapshots the inquiry into a RoleRequest for the
// admin review queue.
func (s *InquiryService) Forward(id uuid.UUID, role string) (*models.Inquiry, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return nil, errors.New("forward target role is required")
	}

	inquiry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	inquiry.ForwardedTo = append(inquiry.ForwardedTo, role)
	if err := s.db.Model(inquiry).Update("forwarded_to", inquiry.ForwardedTo).Error; err != nil {
		return nil, fmt.Errorf("failed to record forward: %w", err)
	}

	if role == string(models.RoleAdmin) {
		request := &models.RoleRequest{
			InquiryID: inquiry.ID,
			Name:      inquiry.Name,
			Email:     inquiry.Email,
			Phone:     inquiry.Phone,
			Message:   inquiry.Message,
			Status:    models.RoleRequestStatusPending,
		}
		if err := s.db.Create(request).Error; err != nil {
			return nil, fmt.Errorf("failed to create role request: %w", err)
		}
	}

	return inquiry, nil
}

func (s *InquiryService) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.Inquiry{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete inquiry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("inquiry not found")
	}
	return nil
}

func (s *InquiryService) ListRoleRequests(params utils.PaginationParams, status models.RoleRequestStatus) ([]models.RoleRequest, int64, error) {
	query := s.db.Model(&models.RoleRequest{})

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count role requests: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "updated_at", "status"})
	query = utils.ApplyPagination(query, params)

	var requests []models.RoleRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch role requests: %w", err)
	}

	return requests, total, nil
}

// UpdateRoleRequest resolves a role request and back-propagates the outcome
// onto the originating inquiry: approved puts it In Progress, rejected
// rejects it.
func (s *InquiryService) UpdateRoleRequest(id uuid.UUID, status models.RoleRequestStatus) (*models.RoleRequest, error) {
	if status != models.RoleRequestStatusApproved && status != models.RoleRequestStatusRejected {
		return nil, errors.New("role request status must be Approved or Rejected")
	}

	var request models.RoleRequest
	if err := s.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("role request not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if request.Status != models.RoleRequestStatusPending {
		return nil, errors.New("role request already resolved")
	}

	if err := s.db.Model(&request).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update role request: %w", err)
	}
	request.Status = status

	inquiryStatus := models.InquiryStatusInProgress
	if status == models.RoleRequestStatusRejected {
		inquiryStatus = models.InquiryStatusRejected
	}

	if err := s.db.Model(&models.Inquiry{}).
		Where("id = ?", request.InquiryID).
		Update("status", inquiryStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to back-propagate inquiry status: %w", err)
	}

	return &request, nil
}
