// Package photo resolves employee photo identifiers to image URLs on the
// image host.
package photo

import (
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// DefaultLogo is served for employees without a photo.
const DefaultLogo = "/assets/logo.svg"

// Resolver turns a photo identifier into a renderable URL.
type Resolver interface {
	URL(photoID string) string
}

// Fallback always returns the logo.
type Fallback struct{}

func (Fallback) URL(string) string { return DefaultLogo }

// Cloudinary builds delivery URLs for public ids under folder.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
	log    *zap.Logger
}

// NewCloudinary returns a Cloudinary resolver, or Fallback when no cloud
// name is configured or the credentials are rejected.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string, log *zap.Logger) Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if cloudName == "" {
		return Fallback{}
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		log.Warn("image host disabled", zap.Error(err))
		return Fallback{}
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: strings.Trim(folder, "/"), log: log}
}

// PublicID is the image host id for photoID.
func (c *Cloudinary) PublicID(photoID string) string {
	if c.folder == "" {
		return photoID
	}
	return c.folder + "/" + photoID
}

// URL returns the delivery URL of photoID, or the logo when photoID is
// empty or the URL cannot be built.
func (c *Cloudinary) URL(photoID string) string {
	photoID = strings.TrimSpace(photoID)
	if photoID == "" {
		return DefaultLogo
	}
	img, err := c.cld.Image(c.PublicID(photoID))
	if err != nil {
		c.log.Warn("photo url failed", zap.String("photo_id", photoID), zap.Error(err))
		return DefaultLogo
	}
	url, err := img.String()
	if err != nil || url == "" {
		c.log.Warn("photo url failed", zap.String("photo_id", photoID), zap.Error(err))
		return DefaultLogo
	}
	return url
}
