// Package qrcode renders logo-branded QR code PNG images.
//
// Rendering is a straight sequence of value transformations: encode the
// matrix, rasterize it, resize the logo, pad it, composite it, encode PNG.
// Every step returns a new image and never mutates its input.
package qrcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // logo decoders
	"image/png"
	"os"

	goqrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// Options 渲染参数
type Options struct {
	// Size 输出图片边长（像素）
	Size int
	// Margin 静区宽度（模块数）
	Margin int
	// LogoRatio logo 边长占二维码边长的比例
	LogoRatio float64
	// LogoPadding logo 四周白边（像素）
	LogoPadding int
}

func DefaultOptions() Options {
	return Options{
		Size:        500,
		Margin:      1,
		LogoRatio:   0.2,
		LogoPadding: 10,
	}
}

// Renderer 生成带 logo 的二维码；logo 只读，可并发使用
type Renderer struct {
	opts Options
	logo image.Image
}

func NewRenderer(logo image.Image, opts Options) *Renderer {
	return &Renderer{opts: opts, logo: logo}
}

// LoadLogo 读取并解码 logo 图片（png / jpeg）
func LoadLogo(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", path, err)
	}
	return img, nil
}

// Render 为 content 生成 PNG 字节。纠错级别固定为 H，
// logo 遮挡约 20% 的面积后仍需可扫描
func (r *Renderer) Render(content string) ([]byte, error) {
	if r.logo == nil {
		return nil, fmt.Errorf("render qr: logo not loaded")
	}

	base, err := Matrix(content, r.opts.Size, r.opts.Margin)
	if err != nil {
		return nil, err
	}

	logoSize := int(float64(base.Bounds().Dx()) * r.opts.LogoRatio)
	if logoSize <= 0 {
		return nil, fmt.Errorf("render qr: logo size %d too small", logoSize)
	}

	badge := Pad(Resize(r.logo, logoSize, logoSize), r.opts.LogoPadding, color.White)
	out := CompositeCenter(base, badge)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Matrix 生成 size×size 的黑白二维码图，四周留 margin 个模块的静区
func Matrix(content string, size, margin int) (*image.RGBA, error) {
	q, err := goqrcode.New(content, goqrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	modules := len(bitmap)
	total := modules + 2*margin
	if size < total {
		return nil, fmt.Errorf("encode qr: size %d smaller than %d modules", size, total)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	black := color.RGBA{A: 0xff}
	for y := 0; y < size; y++ {
		my := y*total/size - margin
		if my < 0 || my >= modules {
			continue
		}
		for x := 0; x < size; x++ {
			mx := x*total/size - margin
			if mx < 0 || mx >= modules {
				continue
			}
			if bitmap[my][mx] {
				img.SetRGBA(x, y, black)
			}
		}
	}
	return img, nil
}

// Resize 使用 Catmull-Rom（双三次）插值缩放
func Resize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// Pad 在 src 四周加 padding 像素的纯色边框，透明区域同样被底色填充
func Pad(src image.Image, padding int, bg color.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*padding, b.Dy()+2*padding))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(padding, padding, padding+b.Dx(), padding+b.Dy()), src, b.Min, draw.Over)
	return dst
}

// CompositeCenter 将 overlay 以 source-over 方式居中叠加到 base 的副本上
func CompositeCenter(base, overlay image.Image) *image.RGBA {
	bb := base.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	draw.Draw(dst, dst.Bounds(), base, bb.Min, draw.Src)

	ob := overlay.Bounds()
	x := (bb.Dx() - ob.Dx()) / 2
	y := (bb.Dy() - ob.Dy()) / 2
	draw.Draw(dst, image.Rect(x, y, x+ob.Dx(), y+ob.Dy()), overlay, ob.Min, draw.Over)
	return dst
}
