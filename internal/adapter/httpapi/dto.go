package httpapi

import (
	"time"

	"github.com/SainteOfficial/autohaus-service/internal/inventory/domain"
	"github.com/SainteOfficial/autohaus-service/internal/inventory/usecase"
)

type vehicleResponse struct {
	ID                 string               `json:"id"`
	Brand              string               `json:"brand"`
	Model              string               `json:"model"`
	Year               int                  `json:"year"`
	Price              float64              `json:"price"`
	Mileage            int                  `json:"mileage"`
	Images             []string             `json:"images"`
	Description        string               `json:"description,omitempty"`
	Specs              domain.Specs         `json:"specs"`
	Condition          domain.Condition     `json:"condition"`
	Features           []string             `json:"features,omitempty"`
	AdditionalFeatures []string             `json:"additionalFeatures,omitempty"`
	Status             domain.VehicleStatus `json:"status"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

func toVehicleResponse(v *domain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:                 v.ID,
		Brand:              v.Brand,
		Model:              v.Model,
		Year:               v.Year,
		Price:              v.Price,
		Mileage:            v.Mileage,
		Images:             v.Images,
		Description:        v.Description,
		Specs:              v.Specs,
		Condition:          v.Condition,
		Features:           v.Features,
		AdditionalFeatures: v.AdditionalFeatures,
		Status:             v.Status,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func toVehicleResponses(vehicles []*domain.Vehicle) []vehicleResponse {
	out := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return out
}

type galleryImageResponse struct {
	ID           string                 `json:"id"`
	URL          string                 `json:"url"`
	Category     domain.GalleryCategory `json:"category,omitempty"`
	VehicleID    string                 `json:"vehicleId,omitempty"`
	VehicleBrand string                 `json:"vehicleBrand,omitempty"`
	VehicleModel string                 `json:"vehicleModel,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
}

func toGalleryImageResponse(img *domain.GalleryImage) galleryImageResponse {
	return galleryImageResponse{
		ID:           img.ID,
		URL:          img.URL,
		Category:     img.Category,
		VehicleID:    img.VehicleID,
		VehicleBrand: img.VehicleBrand,
		VehicleModel: img.VehicleModel,
		CreatedAt:    img.CreatedAt,
	}
}

func toGalleryImageResponses(images []*domain.GalleryImage) []galleryImageResponse {
	out := make([]galleryImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, toGalleryImageResponse(img))
	}
	return out
}

type inquiryResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone,omitempty"`
	Subject   string               `json:"subject"`
	VehicleID string               `json:"vehicleId,omitempty"`
	Message   string               `json:"message"`
	Status    domain.InquiryStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

func toInquiryResponse(inq *domain.Inquiry) inquiryResponse {
	return inquiryResponse{
		ID:        inq.ID,
		Name:      inq.Name,
		Email:     inq.Email,
		Phone:     inq.Phone,
		Subject:   inq.Subject,
		VehicleID: inq.VehicleID,
		Message:   inq.Message,
		Status:    inq.Status,
		CreatedAt: inq.CreatedAt,
	}
}

func toInquiryResponses(inquiries []*domain.Inquiry) []inquiryResponse {
	out := make([]inquiryResponse, 0, len(inquiries))
	for _, inq := range inquiries {
		out = append(out, toInquiryResponse(inq))
	}
	return out
}

type uploadResponse struct {
	Uploaded []uploadedFileResponse  `json:"uploaded"`
	Failed   []uploadFailureResponse `json:"failed,omitempty"`
}

type uploadedFileResponse struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Watermarked bool   `json:"watermarked"`
	Warning     string `json:"warning,omitempty"`
}

type uploadFailureResponse struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

func toUploadResponse(result *usecase.BatchResult) uploadResponse {
	resp := uploadResponse{Uploaded: make([]uploadedFileResponse, 0, len(result.Uploaded))}
	for _, f := range result.Uploaded {
		resp.Uploaded = append(resp.Uploaded, uploadedFileResponse{
			Name:        f.Name,
			URL:         f.URL,
			Watermarked: f.Watermarked,
			Warning:     f.Warning,
		})
	}
	for _, f := range result.Failures {
		resp.Failed = append(resp.Failed, uploadFailureResponse{Name: f.Name, Error: f.Err.Error()})
	}
	return resp
}
