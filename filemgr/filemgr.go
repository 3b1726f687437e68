package filemgr

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"agora/utils"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Domain names the bucket-style top directory an upload belongs to.
type Domain string

const (
	DomainUser      Domain = "userpic"
	DomainJob       Domain = "jobpic"
	DomainProduct   Domain = "productpic"
	DomainCommunity Domain = "communitypic"
	DomainChat      Domain = "chatpic"
	DomainAd        Domain = "adpic"
	DomainResume    Domain = "resumes"
)

// MaxUploadSize is enforced server-side; the UI label alone never was.
const MaxUploadSize = 5 << 20

const staticRoot = "static"

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedDocExts = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
}

var ErrTooLarge = errors.New("file exceeds the 5MB limit")
var ErrBadType = errors.New("unsupported file type")

// SaveImage stores an uploaded image under static/{domain}/{ownerId}/ and
// writes a 200px-wide thumbnail next to it. Returns the public path.
func SaveImage(header *multipart.FileHeader, domain Domain, ownerID string) (string, error) {
	if header.Size > MaxUploadSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrBadType, ext)
	}

	dir := filepath.Join(staticRoot, string(domain), ownerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	name := utils.GetUUID() + ext
	dst := filepath.Join(dir, name)
	if err := copyUpload(header, dst); err != nil {
		return "", err
	}

	if err := writeThumbnail(dst, filepath.Join(dir, "thumb_"+name)); err != nil {
		// thumbnail is cosmetic; the original upload stands
		os.Remove(filepath.Join(dir, "thumb_"+name))
	}

	return "/" + filepath.ToSlash(dst), nil
}

// SaveDocument stores resumes and similar binary attachments. No thumbnail.
func SaveDocument(header *multipart.FileHeader, domain Domain, ownerID string) (string, error) {
	if header.Size > MaxUploadSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedDocExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrBadType, ext)
	}

	dir := filepath.Join(staticRoot, string(domain), ownerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, utils.GetUUID()+"_"+utils.SanitizeFilename(header.Filename))
	if err := copyUpload(header, dst); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(dst), nil
}

func copyUpload(header *multipart.FileHeader, dst string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	// second guard against spoofed Size headers
	_, err = io.Copy(out, io.LimitReader(src, MaxUploadSize+1))
	return err
}

func writeThumbnail(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, 200, 0, imaging.Lanczos)
	return imaging.Save(thumb, dst)
}
