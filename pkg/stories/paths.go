package stories

import (
	"fmt"
	"strings"

	"github.com/storyshelf/storyshelf/pkg/models"
)

// Slot is the upload field a file arrived in. It decides both where the file
// is stored and which table it's recorded in.
type Slot string

const (
	SlotChapterImage Slot = "chapter_image"
	SlotLicenseImage Slot = "license_image"
	SlotCoverImage   Slot = "cover_image"
)

var titleSeparators = strings.NewReplacer("/", "_", `\`, "_")

// StoragePath returns the storage key for the index-th file (0-based) of a
// slot. Cover images are named after the story title.
func StoragePath(storyID int, slot Slot, index int, title string) string {
	switch slot {
	case SlotChapterImage:
		return fmt.Sprintf("stories/%d/%d/%d_img_chapter_%d.jpg", storyID, models.FirstChapterNumber, models.FirstChapterNumber, index)
	case SlotLicenseImage:
		return fmt.Sprintf("stories/%d/license/%d_img_document_%d.jpg", storyID, storyID, index)
	case SlotCoverImage:
		return fmt.Sprintf("stories/%d/%d_%s.jpg", storyID, storyID, titleSeparators.Replace(title))
	default:
		panic(fmt.Sprintf("unknown upload slot %q", slot))
	}
}
