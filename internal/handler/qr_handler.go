package handler

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/snapgather/snapgather-backend/internal/models"
	"github.com/snapgather/snapgather-backend/internal/service"
	"github.com/snapgather/snapgather-backend/pkg/qrcode"
)

type QRHandler struct {
	eventService *service.EventService
}

func NewQRHandler(eventService *service.EventService) *QRHandler {
	return &QRHandler{eventService: eventService}
}

// GetEventQR serves the event's QR code inline as a PNG.
func (h *QRHandler) GetEventQR(c *fiber.Ctx) error {
	event, err := h.eventService.GetGuestEvent(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	png, err := qrcode.Generate(event.QRCodeData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// DownloadEventQR serves the QR code as an attachment. The suggested
// filename uses the raw event title; sanitizing it is the caller's concern.
func (h *QRHandler) DownloadEventQR(c *fiber.Ctx) error {
	event, err := h.eventService.GetGuestEvent(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	png, err := qrcode.Generate(event.QRCodeData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s-qr-code.png"`, event.Title))
	return c.Send(png)
}

// PrintEventQR renders a standalone printable document embedding the QR code
// and the event metadata. The page calls window.print() after a short fixed
// delay, matching the management UI behaviour.
func (h *QRHandler) PrintEventQR(c *fiber.Ctx) error {
	event, err := h.eventService.GetGuestEvent(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	png, err := qrcode.Generate(event.QRCodeData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	data := printViewData{
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		EventDate:   event.EventDate.Format("January 2, 2006 3:04 PM"),
		QRCodeData:  event.QRCodeData,
		QRImage:     template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	}

	var buf bytes.Buffer
	if err := printViewTemplate.Execute(&buf, data); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

type printViewData struct {
	Title       string
	Description string
	Location    string
	EventDate   string
	QRCodeData  string
	QRImage     template.URL
}

var printViewTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Print QR Code - {{.Title}}</title>
  <style>
    body { font-family: sans-serif; margin: 0; padding: 40px; text-align: center; }
    .print-container { max-width: 600px; margin: 0 auto; }
    h1 { font-size: 28px; margin-bottom: 8px; }
    .meta { color: #555; margin-bottom: 24px; }
    .qr-container { display: inline-block; padding: 24px; border: 1px solid #ddd; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); }
    .qr-image { width: 320px; height: 320px; }
    .qr-data { font-size: 12px; color: #888; word-break: break-all; margin-top: 16px; }
    .instructions { margin-top: 24px; color: #555; line-height: 1.6; }
    @media print {
      body { padding: 0; }
      .qr-container { box-shadow: none; }
    }
  </style>
</head>
<body>
  <div class="print-container">
    <h1>{{.Title}}</h1>
    <div class="meta">
      <div>{{.EventDate}}</div>
      {{if .Location}}<div>{{.Location}}</div>{{end}}
      {{if .Description}}<div>{{.Description}}</div>{{end}}
    </div>
    <div class="qr-container">
      <img src="{{.QRImage}}" alt="Event QR Code" class="qr-image" />
      <div class="qr-data">{{.QRCodeData}}</div>
    </div>
    <div class="instructions">
      1. Open your camera app or QR scanner<br>
      2. Point at the QR code above<br>
      3. Upload your photos to the shared gallery
    </div>
  </div>
  <script>
    setTimeout(function() { window.print(); }, 500);
  </script>
</body>
</html>
`))
