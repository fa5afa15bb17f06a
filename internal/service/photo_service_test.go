package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/snapgather/snapgather-backend/internal/models"
	"github.com/snapgather/snapgather-backend/internal/repository"
	"github.com/snapgather/snapgather-backend/pkg/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.Photo{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// fakeStorage is an in-memory stand-in for the blob store.
type fakeStorage struct {
	objects   map[string][]byte
	deleteErr error
	deleteLog []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Delete(key string) error {
	f.deleteLog = append(f.deleteLog, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) List(prefix string) ([]storage.ObjectInfo, error) {
	var infos []storage.ObjectInfo
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, storage.ObjectInfo{Key: key, LastModified: time.Now()})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		FullName:   "Test Organizer",
		Email:      email,
		Password:   "hashed",
		EventLimit: 5,
		PhotoLimit: 100,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestEvent(t *testing.T, db *gorm.DB, organizerID uint, active bool) *models.Event {
	t.Helper()
	event := &models.Event{
		ID:          fmt.Sprintf("event-%s-%d", t.Name(), time.Now().UnixNano()),
		OrganizerID: organizerID,
		Title:       "Summer Wedding",
		EventDate:   time.Now().Add(24 * time.Hour),
		MaxPhotos:   100,
		IsActive:    active,
		QRCodeData:  "https://app.test/g/some-event",
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// makeFileHeaders builds real multipart file headers so that Open() works the
// same way it does on an incoming request.
func makeFileHeaders(t *testing.T, contentType string, names ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photos"; filename="%s"`, name))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create multipart part: %v", err)
		}
		if _, err := part.Write([]byte("not really image data: " + name)); err != nil {
			t.Fatalf("failed to write multipart part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("failed to read multipart form: %v", err)
	}
	return form.File["photos"]
}

func newPhotoServiceForTest(t *testing.T) (*PhotoService, *gorm.DB, *fakeStorage) {
	t.Helper()
	db := newTestDB(t)
	blobStorage := newFakeStorage()
	photoService := NewPhotoService(
		repository.NewPhotoRepository(db),
		repository.NewEventRepository(db),
		blobStorage,
		zap.NewNop(),
	)
	return photoService, db, blobStorage
}

func TestUploadGuestPhotosCreatesUnapprovedRecords(t *testing.T) {
	photoService, db, blobStorage := newPhotoServiceForTest(t)
	user := createTestUser(t, db, "organizer@test.com")
	event := createTestEvent(t, db, user.ID, true)

	files := makeFileHeaders(t, "image/jpeg", "beach.jpg", "sunset.jpg")
	if err := photoService.UploadGuestPhotos(event.ID, files); err != nil {
		t.Fatalf("UploadGuestPhotos returned error: %v", err)
	}

	var photos []models.Photo
	if err := db.Where("event_id = ?", event.ID).Find(&photos).Error; err != nil {
		t.Fatalf("failed to load photos: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photo records, got %d", len(photos))
	}
	for _, photo := range photos {
		if photo.IsApproved {
			t.Errorf("photo %q should start unapproved", photo.FileName)
		}
		if !strings.HasPrefix(photo.FilePath, event.ID+"/") {
			t.Errorf("photo key %q is not namespaced under the event", photo.FilePath)
		}
		if _, ok := blobStorage.objects[photo.FilePath]; !ok {
			t.Errorf("no blob stored for key %q", photo.FilePath)
		}
	}
}

func TestUploadGuestPhotosRejectsInactiveEvent(t *testing.T) {
	photoService, db, blobStorage := newPhotoServiceForTest(t)
	user := createTestUser(t, db, "organizer@test.com")
	event := createTestEvent(t, db, user.ID, false)

	files := makeFileHeaders(t, "image/jpeg", "beach.jpg")
	err := photoService.UploadGuestPhotos(event.ID, files)
	if !errors.Is(err, ErrUploadsClosed) {
		t.Fatalf("expected ErrUploadsClosed, got %v", err)
	}

	if len(blobStorage.objects) != 0 {
		t.Errorf("no blobs should be stored for an inactive event, got %d", len(blobStorage.objects))
	}
}

func TestUploadGuestPhotosUnknownEvent(t *testing.T) {
	photoService, _, _ := newPhotoServiceForTest(t)

	files := makeFileHeaders(t, "image/jpeg", "beach.jpg")
	err := photoService.UploadGuestPhotos("no-such-event", files)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestUploadGuestPhotosRejectsNonImageFile(t *testing.T) {
	photoService, db, _ := newPhotoServiceForTest(t)
	user := createTestUser(t, db, "organizer@test.com")
	event := createTestEvent(t, db, user.ID, true)

	files := makeFileHeaders(t, "application/pdf", "contract.pdf")
	err := photoService.UploadGuestPhotos(event.ID, files)
	if !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
}

// The photo cap on an event is advisory. Concurrent guests may push past it
// and the upload path does not enforce it.
func TestUploadGuestPhotosIgnoresMaxPhotos(t *testing.T) {
	photoService, db, _ := newPhotoServiceForTest(t)
	user := createTestUser(t, db, "organizer@test.com")
	event := createTestEvent(t, db, user.ID, true)
	if err := db.Model(&models.Event{}).Where("id = ?", event.ID).Update("max_photos", 1).Error; err != nil {
		t.Fatalf("failed to set max_photos: %v", err)
	}

	files := makeFileHeaders(t, "image/jpeg", "one.jpg", "two.jpg", "three.jpg")
	if err := photoService.UploadGuestPhotos(event.ID, files); err != nil {
		t.Fatalf("UploadGuestPhotos returned error: %v", err)
	}

	count, err := photoService.GetEventPhotoCount(event.ID)
	if err != nil {
		t.Fatalf("GetEventPhotoCount returned error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 photos past the advisory cap, got %d", count)
	}
}

func TestGalleryShowsOnlyApprovedNewestFirst(t *testing.T) {
	photoService, db, _ := newPhotoServiceForTest(t)
	user := createTestUser(t, db, "organizer@test.com")
	event := createTestEvent(t, db, user.ID, true)

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"old.jpg", "mid.jpg", "new.jpg"} {
		photo := &models.Photo{
			EventID:    event.ID,
			FileName:   name,
			FilePath:   fmt.Sprintf("%s/%d-%s", event.ID, i, name),
			FileSize:   100,
			IsApproved: name != "mid.jpg",
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(photo).Error; err != nil {
			t.Fatalf("failed to create photo: %v", err)
		}
	}

	gallery, err := photoService.GetGalleryPhotos(event.ID)
	if err != nil {
		t.Fatalf("GetGalleryPhotos returned error: %v", err)
	}

	if len(gallery) != 2 {
		t.Fatalf("expected 2 approved photos, got %d", len(gallery))
	}
	if gallery[0].FileName != "new.jpg" || gallery[1].FileName != "old.jpg" {
		t.Errorf("expected newest-first order [new.jpg old.jpg], got [%s %s]",
			gallery[0].FileName, gallery[1].FileName)
	}
	if !strings.HasPrefix(gallery[0].PublicURL, "https://cdn.test/") {
		t.Errorf("public URL not resolved: %q", gallery[0].PublicURL)
	}
}

func TestSetPhotoApprovalMakesPhotoVisible(t *testing.T) {
	photoService, db, _ := newPhotoServiceForTest(t)
	user := createTestUser(t, db, "organizer@test.com")
	event := createTestEvent(t, db, user.ID, true)

	files := makeFileHeaders(t, "image/jpeg", "beach.jpg")
	if err := photoService.UploadGuestPhotos(event.ID, files); err != nil {
		t.Fatalf("UploadGuestPhotos returned error: %v", err)
	}

	gallery, err := photoService.GetGalleryPhotos(event.ID)
	if err != nil {
		t.Fatalf("GetGalleryPhotos returned error: %v", err)
	}
	if len(gallery) != 0 {
		t.Fatalf("gallery should be empty before approval, got %d photos", len(gallery))
	}

	var photo models.Photo
	if err := db.Where("event_id = ?", event.ID).First(&photo).Error; err != nil {
		t.Fatalf("failed to load photo: %v", err)
	}

	if err := photoService.SetPhotoApproval(photo.ID, user.ID, true); err != nil {
		t.Fatalf("SetPhotoApproval returned error: %v", err)
	}

	gallery, err = photoService.GetGalleryPhotos(event.ID)
	if err != nil {
		t.Fatalf("GetGalleryPhotos returned error: %v", err)
	}
	if len(gallery) != 1 {
		t.Fatalf("expected 1 photo after approval, got %d", len(gallery))
	}
}

func TestSetPhotoApprovalForbiddenForNonOwner(t *testing.T) {
	photoService, db, _ := newPhotoServiceForTest(t)
	owner := createTestUser(t, db, "owner@test.com")
	stranger := createTestUser(t, db, "stranger@test.com")
	event := createTestEvent(t, db, owner.ID, true)

	files := makeFileHeaders(t, "image/jpeg", "beach.jpg")
	if err := photoService.UploadGuestPhotos(event.ID, files); err != nil {
		t.Fatalf("UploadGuestPhotos returned error: %v", err)
	}

	var photo models.Photo
	if err := db.Where("event_id = ?", event.ID).First(&photo).Error; err != nil {
		t.Fatalf("failed to load photo: %v", err)
	}

	err := photoService.SetPhotoApproval(photo.ID, stranger.ID, true)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	var reloaded models.Photo
	if err := db.First(&reloaded, photo.ID).Error; err != nil {
		t.Fatalf("failed to reload photo: %v", err)
	}
	if reloaded.IsApproved {
		t.Error("photo should remain unapproved after a forbidden request")
	}
}

// The metadata row is the authoritative record. A failing blob delete is
// logged and the row is removed anyway; the sweep job reclaims the blob.
func TestDeletePhotoSurvivesStorageFailure(t *testing.T) {
	photoService, db, blobStorage := newPhotoServiceForTest(t)
	user := createTestUser(t, db, "organizer@test.com")
	event := createTestEvent(t, db, user.ID, true)

	files := makeFileHeaders(t, "image/jpeg", "beach.jpg")
	if err := photoService.UploadGuestPhotos(event.ID, files); err != nil {
		t.Fatalf("UploadGuestPhotos returned error: %v", err)
	}

	var photo models.Photo
	if err := db.Where("event_id = ?", event.ID).First(&photo).Error; err != nil {
		t.Fatalf("failed to load photo: %v", err)
	}

	blobStorage.deleteErr = errors.New("storage unavailable")
	if err := photoService.DeletePhoto(photo.ID, user.ID); err != nil {
		t.Fatalf("DeletePhoto should succeed despite storage failure, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count photos: %v", err)
	}
	if count != 0 {
		t.Error("photo row should be deleted even when the blob delete fails")
	}
}

func TestDeletePhotoForbiddenForNonOwner(t *testing.T) {
	photoService, db, _ := newPhotoServiceForTest(t)
	owner := createTestUser(t, db, "owner@test.com")
	stranger := createTestUser(t, db, "stranger@test.com")
	event := createTestEvent(t, db, owner.ID, true)

	files := makeFileHeaders(t, "image/jpeg", "beach.jpg")
	if err := photoService.UploadGuestPhotos(event.ID, files); err != nil {
		t.Fatalf("UploadGuestPhotos returned error: %v", err)
	}

	var photo models.Photo
	if err := db.Where("event_id = ?", event.ID).First(&photo).Error; err != nil {
		t.Fatalf("failed to load photo: %v", err)
	}

	err := photoService.DeletePhoto(photo.ID, stranger.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count photos: %v", err)
	}
	if count != 1 {
		t.Error("photo should survive a forbidden delete")
	}
}

func TestGetEventPhotosIncludesUnapproved(t *testing.T) {
	photoService, db, _ := newPhotoServiceForTest(t)
	user := createTestUser(t, db, "organizer@test.com")
	event := createTestEvent(t, db, user.ID, true)

	files := makeFileHeaders(t, "image/jpeg", "one.jpg", "two.jpg")
	if err := photoService.UploadGuestPhotos(event.ID, files); err != nil {
		t.Fatalf("UploadGuestPhotos returned error: %v", err)
	}

	photos, err := photoService.GetEventPhotos(event.ID, user.ID)
	if err != nil {
		t.Fatalf("GetEventPhotos returned error: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos in the moderation list, got %d", len(photos))
	}

	if _, err := photoService.GetEventPhotos(event.ID, user.ID+999); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
}
