package fridge

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"fridge-tracker-backend/domain"
	"fridge-tracker-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeFridgeRepository is an in-memory FridgeRepository for service tests.
type fakeFridgeRepository struct {
	nextID uint
	items  map[uint]*entities.FridgeItem
	scans  map[string]*entities.ReceiptScan
}

func newFakeFridgeRepository() *fakeFridgeRepository {
	return &fakeFridgeRepository{
		nextID: 1,
		items:  make(map[uint]*entities.FridgeItem),
		scans:  make(map[string]*entities.ReceiptScan),
	}
}

func (r *fakeFridgeRepository) AddItem(_ context.Context, item *entities.FridgeItem) error {
	item.ID = r.nextID
	r.nextID++
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeFridgeRepository) GetItemByID(_ context.Context, id uint) (*entities.FridgeItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *fakeFridgeRepository) DeleteItem(_ context.Context, id uint) (int64, error) {
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

func (r *fakeFridgeRepository) GetItems(_ context.Context, userID uint) ([]*entities.FridgeItem, error) {
	items := make([]*entities.FridgeItem, 0, len(r.items))
	for id := uint(1); id < r.nextID; id++ {
		if item, ok := r.items[id]; ok && item.AddedByID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeFridgeRepository) DeleteAllItems(_ context.Context, userID uint) (int64, error) {
	var removed int64
	for id, item := range r.items {
		if item.AddedByID == userID {
			delete(r.items, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeFridgeRepository) CreateReceiptScan(_ context.Context, receiptScan *entities.ReceiptScan) error {
	stored := *receiptScan
	r.scans[receiptScan.ID.String()] = &stored
	return nil
}

func (r *fakeFridgeRepository) GetReceiptScanByID(_ context.Context, id string) (*entities.ReceiptScan, error) {
	scan, ok := r.scans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return scan, nil
}

func (r *fakeFridgeRepository) UpdateReceiptScan(_ context.Context, receiptScan *entities.ReceiptScan) error {
	stored := *receiptScan
	r.scans[receiptScan.ID.String()] = &stored
	return nil
}

// fakeS3 records uploads and deletes in memory.
type fakeS3 struct {
	uploaded []string
	deleted  []string
}

const fakeS3Prefix = "https://bucket.s3.test/"

func (f *fakeS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowExt ...string) (string, error) {
	key := folder + "/" + fileName + ".jpg"
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return fakeS3Prefix + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeS3Prefix) {
		return ""
	}
	return strings.TrimPrefix(link, fakeS3Prefix)
}

func receiptFileHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("receipt_image", "receipt.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["receipt_image"][0]
}

func newTestService() (FridgeService, *fakeFridgeRepository) {
	repo := newFakeFridgeRepository()
	return NewFridgeService(repo, nil), repo
}

func TestAddItemRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.AddItem(ctx, domain.AddFridgeItemRequest{
		Name:       "  Milk  ",
		Category:   "dairy",
		Quantity:   intPtr(2),
		ExpiryDate: "2025-06-01",
	}, 1)
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Equal(t, "Milk", res.Name, "name is trimmed")
	assert.Equal(t, "dairy", res.Category)
	assert.Equal(t, 2, res.Quantity)
	require.NotNil(t, res.ExpiryDate)
	assert.Equal(t, "2025-06-01", res.ExpiryDate.Format("2006-01-02"))

	list, err := svc.GetItems(ctx, 1, FilterState{}, SortState{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, res.ID, list.Items[0].ID)
}

func TestAddItemDefaults(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.AddItem(context.Background(), domain.AddFridgeItemRequest{Name: "Bread"}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Quantity, "missing quantity defaults to 1")
	assert.Empty(t, res.Category)
	assert.Nil(t, res.ExpiryDate)
	assert.Equal(t, "unknown", res.ExpiryState)
	assert.Equal(t, "No date", res.ExpiryLabel)
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "   "}, 1)
	assert.ErrorIs(t, err, domain.ErrItemNameRequired)

	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "x", Category: "spaceship"}, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "x", Quantity: intPtr(-1)}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "x", ExpiryDate: "01/06/2025"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)
}

func TestGetItemsAppliesFilterAndSort(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Milk", Category: "dairy", Quantity: intPtr(1)}, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Cheese", Category: "dairy", Quantity: intPtr(5)}, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Steak", Category: "meat", Quantity: intPtr(1)}, 1)
	require.NoError(t, err)

	list, err := svc.GetItems(ctx, 1, FilterState{Category: "dairy"}, SortState{Key: SortByQuantity, Direction: SortDesc})
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Cheese", list.Items[0].Name)
	assert.Equal(t, "Milk", list.Items[1].Name)
}

func TestGetItemsScopedToUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Mine"}, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Theirs"}, 2)
	require.NoError(t, err)

	list, err := svc.GetItems(ctx, 1, FilterState{}, SortState{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Mine", list.Items[0].Name)
}

func TestDeleteItem(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, err := svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "One"}, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Two"}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, first.ID, 1))
	assert.Len(t, repo.items, 1, "exactly one record removed")

	err = svc.DeleteItem(ctx, first.ID, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound, "deleting a missing id surfaces not found")
}

func TestDeleteItemOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Mine"}, 1)
	require.NoError(t, err)

	err = svc.DeleteItem(ctx, res.ID, 2)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestEmptyFridgeScopedToUser(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Mine A"}, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Mine B"}, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, domain.AddFridgeItemRequest{Name: "Theirs"}, 2)
	require.NoError(t, err)

	removed, err := svc.EmptyFridge(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Len(t, repo.items, 1, "other users' items untouched")
}

func TestSeedFridge(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	added, err := svc.SeedFridge(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, len(seedItems), added)

	list, err := svc.GetItems(ctx, 1, FilterState{}, SortState{})
	require.NoError(t, err)
	assert.Equal(t, len(seedItems), list.Total)

	// The seed data covers every urgency state.
	states := make(map[string]bool)
	for _, item := range list.Items {
		states[item.ExpiryState] = true
	}
	assert.True(t, states[string(ExpiryExpired)])
	assert.True(t, states[string(ExpiryExpiringSoon)])
	assert.True(t, states[string(ExpiryFresh)])
	assert.True(t, states[string(ExpiryUnknown)])
}

func TestScanReceiptExtractionFailure(t *testing.T) {
	// No extraction backend is configured, so the scan fails after the
	// upload; the record stays for auditing but the image is discarded.
	repo := newFakeFridgeRepository()
	s3 := &fakeS3{}
	svc := NewFridgeService(repo, s3)

	_, err := svc.ScanReceipt(context.Background(), domain.UploadReceiptRequest{
		ReceiptImage: receiptFileHeader(t),
	}, 1)
	require.ErrorIs(t, err, domain.ErrReceiptProcessingFailed)

	require.Len(t, s3.uploaded, 1)
	assert.Equal(t, s3.uploaded, s3.deleted, "the orphaned upload is cleaned up")

	require.Len(t, repo.scans, 1)
	for _, scan := range repo.scans {
		assert.Equal(t, "Failed", scan.Status)
		assert.Empty(t, scan.ImageURL)
		assert.NotEmpty(t, scan.Results)
	}
}

func TestSaveScannedItems(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	scanID := uuid.New()
	require.NoError(t, repo.CreateReceiptScan(ctx, &entities.ReceiptScan{
		ID:     scanID,
		UserID: 1,
		Status: "Processed",
	}))

	res, err := svc.SaveScannedItems(ctx, domain.SaveScannedItemsRequest{
		ScanID: scanID.String(),
		Items: []domain.ReviewItem{
			{Name: "Milk", Category: "dairy", Quantity: 2, ExpiryDays: 7, IsFood: true},
			{Name: "Paper Towels", Category: "miscellaneous", Quantity: 1, IsFood: false},
			{Name: "  ", Category: "dairy", Quantity: 1, IsFood: true},
		},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	require.Len(t, res.Results, 2, "non-food items are excluded before the insert")
	assert.True(t, res.Results[0].Success)
	assert.False(t, res.Results[1].Success, "one bad item never aborts the batch")
	assert.NotEmpty(t, res.Results[1].Error)

	scan, err := repo.GetReceiptScanByID(ctx, scanID.String())
	require.NoError(t, err)
	assert.Equal(t, "Completed", scan.Status)
}

func TestSaveScannedItemsUnknownScan(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.SaveScannedItems(context.Background(), domain.SaveScannedItemsRequest{
		ScanID: uuid.NewString(),
		Items:  []domain.ReviewItem{{Name: "Milk", IsFood: true}},
	}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidReceiptScan)
}

func TestSaveScannedItemsOwnership(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	scanID := uuid.New()
	require.NoError(t, repo.CreateReceiptScan(ctx, &entities.ReceiptScan{ID: scanID, UserID: 1}))

	_, err := svc.SaveScannedItems(ctx, domain.SaveScannedItemsRequest{
		ScanID: scanID.String(),
		Items:  []domain.ReviewItem{{Name: "Milk", IsFood: true}},
	}, 2)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestSaveScannedItemsNoFood(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	scanID := uuid.New()
	require.NoError(t, repo.CreateReceiptScan(ctx, &entities.ReceiptScan{ID: scanID, UserID: 1}))

	_, err := svc.SaveScannedItems(ctx, domain.SaveScannedItemsRequest{
		ScanID: scanID.String(),
		Items:  []domain.ReviewItem{{Name: "Soap", IsFood: false}},
	}, 1)
	assert.ErrorIs(t, err, domain.ErrNoFoodItems)
}

func TestSaveScannedItemsExpiryFromDays(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	scanID := uuid.New()
	require.NoError(t, repo.CreateReceiptScan(ctx, &entities.ReceiptScan{ID: scanID, UserID: 1}))

	_, err := svc.SaveScannedItems(ctx, domain.SaveScannedItemsRequest{
		ScanID: scanID.String(),
		Items: []domain.ReviewItem{
			{Name: "Milk", Category: "dairy", Quantity: 1, ExpiryDays: 7, IsFood: true},
			{Name: "Salt", Category: "condiments", Quantity: 1, ExpiryDays: 0, IsFood: true},
		},
	}, 1)
	require.NoError(t, err)

	items, err := repo.GetItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].ExpiryDate)
	wantDay := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	assert.Equal(t, wantDay, items[0].ExpiryDate.Format("2006-01-02"))

	assert.Nil(t, items[1].ExpiryDate, "zero expiry days means no expiry date")
	require.NotNil(t, items[1].ReceiptScanID)
	assert.Equal(t, scanID.String(), *items[1].ReceiptScanID)
}
