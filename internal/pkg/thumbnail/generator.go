package thumbnail

import (
	"bamboo/internal/api/config"
	"bamboo/internal/model"
	"bamboo/internal/pkg/minio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cardWidth   = 1200
	cardHeight  = 630
	borderWidth = 30
)

var (
	colorWhite       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorPrimary     = color.NRGBA{R: 203, G: 231, B: 181, A: 255}
	colorPrimaryDark = color.NRGBA{R: 136, G: 152, B: 120, A: 255}
)

// Renderer 接受投稿后的 OpenGraph 卡片生成器
type Renderer interface {
	Render(ctx context.Context, post *model.Post) error
}

// ObjectName 卡片在存储桶里的对象名，按公开编号寻址
func ObjectName(number uint64) string {
	return fmt.Sprintf("%d.jpeg", number)
}

type MinioRenderer struct {
	board config.BoardConfig
}

func NewMinioRenderer(board config.BoardConfig) *MinioRenderer {
	return &MinioRenderer{board: board}
}

// Render 绘制 1200x630 的卡片并上传到 MinIO
func (s *MinioRenderer) Render(ctx context.Context, post *model.Post) error {
	if post.Number == nil {
		return errors.New("投稿尚未分配编号")
	}

	img := imaging.New(cardWidth, cardHeight, colorWhite)
	drawBorder(img)

	number := *post.Number

	drawLabel(img, s.board.Title, 40, 50, colorPrimaryDark, 2)
	drawLabelRight(img, fmt.Sprintf("#%d", number), cardWidth-40, 50, colorPrimaryDark, 2)
	drawLabelRight(img, "#"+post.Tag, cardWidth-40, 90, colorPrimaryDark, 2)
	drawLabelRight(img, s.board.SiteURL, cardWidth-40, cardHeight-40, colorPrimaryDark, 2)

	title := post.Title
	if title == "" {
		title = fmt.Sprintf("#%d", number)
	}
	drawTitle(img, title)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(95)); err != nil {
		return err
	}

	_, err := minio.UploadFile(ctx, ObjectName(number), &buf, int64(buf.Len()), "image/jpeg")
	return err
}

func drawBorder(img *image.NRGBA) {
	bar := imaging.New(cardWidth, borderWidth, colorPrimaryDark)
	side := imaging.New(borderWidth, cardHeight, colorPrimaryDark)

	*img = *imaging.Paste(img, bar, image.Pt(0, 0))
	*img = *imaging.Paste(img, bar, image.Pt(0, cardHeight-borderWidth))
	*img = *imaging.Paste(img, side, image.Pt(0, 0))
	*img = *imaging.Paste(img, side, image.Pt(cardWidth-borderWidth, 0))
}

// titleScale 标题越长缩放越小，和原卡片的分级字号一个意思
func titleScale(text string) int {
	switch n := len([]rune(text)); {
	case n < 11:
		return 7
	case n < 16:
		return 5
	default:
		return 4
	}
}

// drawText 用位图字体绘制一行文字，返回绘制宽度
func drawText(dst *image.NRGBA, text string, x, y int, c color.NRGBA) int {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return d.MeasureString(text).Ceil()
}

func textWidth(text string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(text).Ceil()
}

// drawLabel 小号文字按给定倍率放大后贴到指定位置
func drawLabel(dst *image.NRGBA, text string, x, y int, c color.NRGBA, scale int) {
	if text == "" {
		return
	}
	pasteScaled(dst, text, x, y, c, scale, false)
}

func drawLabelRight(dst *image.NRGBA, text string, right, y int, c color.NRGBA, scale int) {
	if text == "" {
		return
	}
	pasteScaled(dst, text, right, y, c, scale, true)
}

// drawTitle 标题走大倍率并水平居中
func drawTitle(dst *image.NRGBA, title string) {
	scale := titleScale(title)
	w := textWidth(title) * scale
	x := (cardWidth - w) / 2
	pasteScaled(dst, title, x, cardHeight/2, colorPrimary, scale, false)
}

// pasteScaled 位图字体没有矢量字号，先在小画布上绘制再整体放大
func pasteScaled(dst *image.NRGBA, text string, x, y int, c color.NRGBA, scale int, alignRight bool) {
	w := textWidth(text)
	h := basicfont.Face7x13.Metrics().Height.Ceil()
	canvas := imaging.New(w+2, h+2, color.NRGBA{})
	drawText(canvas, text, 1, basicfont.Face7x13.Metrics().Ascent.Ceil()+1, c)

	scaled := imaging.Resize(canvas, (w+2)*scale, (h+2)*scale, imaging.NearestNeighbor)

	px := x
	if alignRight {
		px = x - scaled.Bounds().Dx()
	}
	*dst = *imaging.Overlay(dst, scaled, image.Pt(px, y-scaled.Bounds().Dy()/2), 1.0)
}
