package export

import (
	"fmt"
	"time"

	"github.com/spacesedan/sentiscope/internal/apperrors"
	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	FilePrefix = "SentiScope_Report_"

	// A4 portrait, millimetres.
	PageWidthA4  = 210.0
	PageHeightA4 = 297.0

	// Absorbs float error so an image that is an exact multiple of the page
	// height does not spill a blank trailing page.
	heightEpsilon = 1e-9
)

// ScaledHeight is the height the image takes once its width is fit to the page.
func ScaledHeight(imgWidth, imgHeight, pageWidth float64) float64 {
	return imgHeight * (pageWidth / imgWidth)
}

// Paginate tiles an imgWidth x imgHeight surface, scaled to pageWidth, over pages of
// pageHeight. Every page draws the full image shifted up by the height already shown,
// so page k sits at offset -(k*pageHeight).
func Paginate(imgWidth, imgHeight, pageWidth, pageHeight float64) ([]models.PagePlacement, error) {
	if imgWidth <= 0 || imgHeight <= 0 {
		return nil, apperrors.InvalidArgument("image size must be positive, got %vx%v", imgWidth, imgHeight)
	}
	if pageWidth <= 0 || pageHeight <= 0 {
		return nil, apperrors.InvalidArgument("page size must be positive, got %vx%v", pageWidth, pageHeight)
	}

	scaled := ScaledHeight(imgWidth, imgHeight, pageWidth)

	placements := []models.PagePlacement{{PageIndex: 0, VerticalOffset: 0}}
	heightLeft := scaled - pageHeight
	for heightLeft > heightEpsilon {
		k := len(placements)
		placements = append(placements, models.PagePlacement{
			PageIndex:      k,
			VerticalOffset: -(float64(k) * pageHeight),
		})
		heightLeft -= pageHeight
	}

	return placements, nil
}

// FileName is the export document name for the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("%s%s.pdf", FilePrefix, now.Format(time.DateOnly))
}
