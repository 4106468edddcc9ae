package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxUploadBytes caps every uploaded file.
const MaxUploadBytes = 5 << 20

// MaxImageSide is the longest edge a stored profile image may have.
const MaxImageSide = 512

// MaxImagePixels caps the decoded size of an uploaded image. A small
// compressed file can declare dimensions far beyond what it costs to send.
const MaxImagePixels = 40_000_000

var (
	ErrFileTooLarge   = errors.New("file size must be under 5MB")
	ErrFileType       = errors.New("file type not allowed")
	ErrEmptyFile      = errors.New("file is empty")
	ErrImageMalformed = errors.New("file is not a readable image")
	ErrImageTooLarge  = errors.New("image dimensions are too large")
)

var (
	resumeExts      = []string{".pdf", ".doc", ".docx"}
	certificateExts = []string{".pdf", ".png", ".jpg", ".jpeg"}
)

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Prepared is a checked upload ready to be saved.
type Prepared struct {
	Ext         string
	ContentType string
	Data        []byte
}

func (p Prepared) Reader() io.Reader { return bytes.NewReader(p.Data) }

// PrepareResume accepts pdf, doc and docx files up to MaxUploadBytes.
func PrepareResume(u Upload) (Prepared, error) {
	return prepareDocument(u, resumeExts)
}

// PrepareCertificate accepts pdf and common image files up to MaxUploadBytes.
func PrepareCertificate(u Upload) (Prepared, error) {
	return prepareDocument(u, certificateExts)
}

func prepareDocument(u Upload, allowed []string) (Prepared, error) {
	ext := strings.ToLower(filepath.Ext(u.Filename))
	if !contains(allowed, ext) {
		return Prepared{}, fmt.Errorf("%w: only %s", ErrFileType, strings.Join(allowed, ", "))
	}
	data, err := readLimited(u)
	if err != nil {
		return Prepared{}, err
	}
	return Prepared{Ext: ext, ContentType: mimetype.Detect(data).String(), Data: data}, nil
}

// PrepareImage checks that the upload really is an image by sniffing its
// content and reading its header, then shrinks it to fit MaxImageSide and re-encodes it as JPEG.
func PrepareImage(u Upload) (Prepared, error) {
	data, err := readLimited(u)
	if err != nil {
		return Prepared{}, err
	}
	switch mimetype.Detect(data).String() {
	case "image/jpeg", "image/png", "image/gif", "image/bmp", "image/tiff":
	default:
		return Prepared{}, fmt.Errorf("%w: upload a jpeg, png or gif image", ErrFileType)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Prepared{}, ErrImageMalformed
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return Prepared{}, ErrImageTooLarge
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Prepared{}, ErrImageMalformed
	}
	img = fitImage(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return Prepared{}, err
	}
	return Prepared{Ext: ".jpg", ContentType: "image/jpeg", Data: buf.Bytes()}, nil
}

func fitImage(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxImageSide && b.Dy() <= MaxImageSide {
		return img
	}
	return imaging.Fit(img, MaxImageSide, MaxImageSide, imaging.Lanczos)
}

func readLimited(u Upload) ([]byte, error) {
	if u.Size > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if u.Content == nil {
		return nil, ErrEmptyFile
	}
	data, err := io.ReadAll(io.LimitReader(u.Content, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Keys follow the per-user directory layout; file names are replaced by a
// random UUID so uploads never collide or carry client paths.

func ResumeKey(userID uint64, ext string) string {
	return fmt.Sprintf("resumes/user_%d/%s%s", userID, uuid.NewString(), ext)
}

func ProfileImageKey(userID uint64, ext string) string {
	return fmt.Sprintf("profile_images/user_%d/%s%s", userID, uuid.NewString(), ext)
}

func ConsultantImageKey(userID uint64, ext string) string {
	return fmt.Sprintf("consultant_profile_images/user_%d/%s%s", userID, uuid.NewString(), ext)
}

// CertificateKey is keyed by candidate profile id, which is what an
// enrollment references.
func CertificateKey(candidateID uint64, ext string) string {
	return fmt.Sprintf("certificates/candidate_%d/%s%s", candidateID, uuid.NewString(), ext)
}

func ApplicationResumeKey(userID uint64, ext string) string {
	return fmt.Sprintf("applications/resumes/user_%d/%s%s", userID, uuid.NewString(), ext)
}
