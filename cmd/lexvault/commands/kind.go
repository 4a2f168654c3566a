package commands

import (
	"path/filepath"
	"strings"

	"lexvault/internal/domain"
)

// kindFromPath guesses a material kind from a file extension.
func kindFromPath(path string) (domain.MaterialKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return domain.KindPDF, true
	case ".doc", ".docx", ".odt", ".rtf":
		return domain.KindWord, true
	case ".png", ".jpg", ".jpeg", ".gif":
		return domain.KindImage, true
	case ".mp4", ".mov", ".webm":
		return domain.KindVideo, true
	case ".txt", ".md":
		return domain.KindText, true
	case ".xls", ".xlsx", ".csv", ".ods":
		return domain.KindExcel, true
	}
	return "", false
}
