package validator

import (
	"net"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IP validation. The network binding comparison itself is exact string
// equality; this only guards CRUD input.
func IsValidIP(s string) bool {
	return net.ParseIP(s) != nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var allowedImageExts = []string{".jpg", ".jpeg", ".png"}

// IsAllowedImageExt checks an upload filename against the evidence
// image whitelist.
func IsAllowedImageExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return IsInSlice(ext, allowedImageExts)
}

// Staff ID validation: 3-20 chars, A-Z, a-z, 0-9, -, _
var staffIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

func IsValidStaffID(staffID string) bool {
	return staffIDRegex.MatchString(staffID)
}
