// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants shared across the application:
// entity statuses, audit categories and upload MIME types.
package model

// Event statuses.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusCompleted = "completed"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Enquiry statuses.
const (
	EnquiryStatusNew       = "new"
	EnquiryStatusContacted = "contacted"
	EnquiryStatusClosed    = "closed"
)

// Newsletter issue statuses.
const (
	NewsletterStatusDraft  = "draft"
	NewsletterStatusQueued = "queued"
	NewsletterStatusSent   = "sent"
)

// Audit log levels.
const (
	AuditLevelInfo    = "info"
	AuditLevelWarning = "warning"
	AuditLevelError   = "error"
)

// Audit log categories.
const (
	AuditCategoryAuth     = "auth"
	AuditCategoryContent  = "content"
	AuditCategoryCommerce = "commerce"
	AuditCategorySystem   = "system"
)

// MIME types accepted by the upload endpoint.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypePDF  = "application/pdf"
)

// AllowedUploadMimeTypes is the allow-list enforced by the upload endpoint.
var AllowedUploadMimeTypes = map[string]bool{
	MimeTypeJPEG: true,
	MimeTypePNG:  true,
	MimeTypeGIF:  true,
	MimeTypeWebP: true,
	MimeTypePDF:  true,
}

// IsImageMime reports whether the MIME type is an image we can thumbnail.
func IsImageMime(mime string) bool {
	switch mime {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	}
	return false
}
