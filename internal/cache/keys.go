package cache

import (
	"strings"

	"golden_hour/internal/domain/models"
)

// Key addresses one cached resource or collection. Partitioned resources
// append the partition key after a colon, e.g. "photos:weddings"; the part
// before the colon is the key family used for family-wide invalidation.
type Key string

const (
	KeyPhotos          Key = "photos"
	KeyVideos          Key = "videos"
	KeyPackages        Key = "packages"
	KeyBookings        Key = "bookings"
	KeyGalleries       Key = "specialMomentGalleries"
	KeyHomepageContent Key = "homepageContent"
	KeySitewideContent Key = "sitewideContent"
	KeyCategoryMeta    Key = "categoryMeta"
	KeyProfile         Key = "currentUserProfile"
	KeyIsAdmin         Key = "isAdmin"
)

func (k Key) Family() string {
	if i := strings.IndexByte(string(k), ':'); i >= 0 {
		return string(k[:i])
	}
	return string(k)
}

func (k Key) partition(p string) Key {
	return k + Key(":"+p)
}

func PhotosByCategory(c models.Category) Key {
	return KeyPhotos.partition(string(c))
}

func VideosByCategory(c models.Category) Key {
	return KeyVideos.partition(string(c))
}

func PackagesByKind(isVideo bool) Key {
	if isVideo {
		return KeyPackages.partition("video")
	}
	return KeyPackages.partition("photo")
}

func GalleriesByDate(date string) Key {
	return KeyGalleries.partition(date)
}

func CategoryMetaFor(c models.Category) Key {
	return KeyCategoryMeta.partition(string(c))
}

func ProfileFor(identity string) Key {
	return KeyProfile.partition(identity)
}

func IsAdminFor(identity string) Key {
	return KeyIsAdmin.partition(identity)
}
