/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package gui presents a host session in a fyne desktop window.
package gui

import (
	"context"
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/pkg/errors"

	"emul8/chip8"
	"emul8/internal/host"
)

var (
	Background = color.RGBA{R: 10, G: 61, B: 98, A: 0xFF}
	Foreground = color.RGBA{R: 130, G: 204, B: 221, A: 0xFF}
)

// Window presents a session in a desktop window and feeds it keyboard input.
type Window struct {
	session *host.Session
	title   string
	scale   int

	app    fyne.App
	window fyne.Window
	buffer *image.RGBA
	image  *canvas.Image
	beep   bool

	// do runs f on the UI goroutine.
	do   func(f func())
	quit func()
}

func NewWindow(session *host.Session, title string, scale int) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		session: session,
		title:   title,
		scale:   scale,
		do:      fyne.Do,
	}
}

func (w *Window) onKeyDown(k *fyne.KeyEvent) {
	if k.Name == fyne.KeyEscape {
		w.quit()
		return
	}
	if key, ok := KeyFor(k.Name); ok {
		w.session.Press(key)
	}
}

func (w *Window) onKeyUp(k *fyne.KeyEvent) {
	if key, ok := KeyFor(k.Name); ok {
		w.session.Release(key)
	}
}

func (w *Window) newCanvas() {
	// Back-buffer for the pixel data, scaled up by the canvas.
	w.buffer = image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))

	w.image = canvas.NewImageFromImage(w.buffer)
	w.image.FillMode = canvas.ImageFillStretch  // Scales the 64x32 grid to window size
	w.image.ScaleMode = canvas.ImageScalePixels // Maintains "pixelated" retro look
}

// present is called from the emulation goroutine. The buffer is shared with
// the renderer, so painting happens on the UI goroutine along with the
// refresh.
func (w *Window) present() {
	w.do(func() {
		w.session.Paint(w.buffer, Foreground, Background)
		w.image.Refresh()

		beep := w.session.SoundActive()
		if beep != w.beep {
			w.beep = beep
			w.window.SetTitle(w.titleText(beep))
		}
	})
}

func (w *Window) titleText(beep bool) string {
	if beep {
		return w.title + " ♪"
	}
	return w.title
}

// Run opens the window and blocks until it is closed or the processor
// faults. The fault, if any, is returned.
func (w *Window) Run(ctx context.Context, cfg host.Config) error {
	w.app = app.New()
	w.window = w.app.NewWindow(w.title)
	w.quit = w.app.Quit
	w.newCanvas()

	canv, ok := w.window.Canvas().(desktop.Canvas)
	if !ok {
		return errors.New("emulator cannot be run on mobile")
	}
	canv.SetOnKeyDown(w.onKeyDown)
	canv.SetOnKeyUp(w.onKeyUp)

	w.window.SetContent(w.image)
	w.window.Resize(fyne.NewSize(float32(chip8.Width*w.scale), float32(chip8.Height*w.scale)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Go(func() {
		runErr = w.session.Run(ctx, cfg, w.present)
		if runErr != nil {
			fyne.Do(w.app.Quit)
		}
	})

	w.window.ShowAndRun()
	cancel()
	wg.Wait()

	return runErr
}
