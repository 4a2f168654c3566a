package material

import (
	"bytes"

	"lexvault/internal/domain"
)

const (
	mimePDF         = "application/pdf"
	mimeText        = "text/plain"
	mimeMP4         = "video/mp4"
	mimeSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePNG         = "image/png"
	mimeJPEG        = "image/jpeg"
	mimeGIF         = "image/gif"
	mimeOctetStream = "application/octet-stream"
)

var (
	magicPNG  = []byte{0x89, 'P', 'N', 'G'}
	magicJPEG = []byte{0xff, 0xd8}
	magicGIF  = []byte("GIF")
)

// MIMEType picks how the viewer renders decrypted content of the given kind.
// Word documents are previewed as plain text. Images are sniffed by magic
// number and fall back to PNG.
func MIMEType(kind domain.MaterialKind, content []byte) string {
	switch kind {
	case domain.KindPDF:
		return mimePDF
	case domain.KindWord, domain.KindText:
		return mimeText
	case domain.KindVideo:
		return mimeMP4
	case domain.KindExcel:
		return mimeSpreadsheet
	case domain.KindImage:
		switch {
		case bytes.HasPrefix(content, magicPNG):
			return mimePNG
		case bytes.HasPrefix(content, magicJPEG):
			return mimeJPEG
		case bytes.HasPrefix(content, magicGIF):
			return mimeGIF
		}
		return mimePNG
	}
	return mimeOctetStream
}
