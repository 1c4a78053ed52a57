package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hrconsole/internal/client/models"
)

func TestCreateOpening_ValidatesBeforeCalling(t *testing.T) {
	fc := &fakeClient{OpeningRet: &models.Opening{OpeningID: 3}}
	svc := NewHRService(fc, nil)

	_, err := svc.CreateOpening(context.Background(), "  ", "")
	require.ErrorIs(t, err, models.ErrJobTitleRequired)

	o, err := svc.CreateOpening(context.Background(), " Developer ", "  ")
	require.NoError(t, err)
	assert.Equal(t, 3, o.OpeningID)
	assert.Equal(t, "Developer", fc.LastOpeningInput.JobTitle)
	assert.Nil(t, fc.LastOpeningInput.Description)
}

func TestUpdateOpening_RejectsEmptyAndInvalidPatch(t *testing.T) {
	fc := &fakeClient{}
	svc := NewHRService(fc, nil)

	_, err := svc.UpdateOpening(context.Background(), 1, models.OpeningPatch{})
	require.ErrorIs(t, err, ErrNothingToUpdate)

	long := strings.Repeat("x", models.MaxJobTitleLen+1)
	_, err = svc.UpdateOpening(context.Background(), 1, models.OpeningPatch{JobTitle: &long})
	require.ErrorIs(t, err, models.ErrJobTitleTooLong)
	assert.Equal(t, 0, fc.UpdateCalls)

	open := true
	_, err = svc.UpdateOpening(context.Background(), 1, models.OpeningPatch{OpenFlag: &open})
	require.NoError(t, err)
	assert.Equal(t, 1, fc.UpdateCalls)
}

func TestUpdateEmployee_RequiresAField(t *testing.T) {
	svc := NewHRService(&fakeClient{}, nil)
	_, err := svc.UpdateEmployee(context.Background(), 1, models.EmployeePatch{})
	require.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestCreateEmployee_RequiresIdentity(t *testing.T) {
	svc := NewHRService(&fakeClient{}, nil)
	_, err := svc.CreateEmployee(context.Background(), models.Employee{JobTitle: "Dev"})
	require.Error(t, err)

	e, err := svc.CreateEmployee(context.Background(), models.Employee{JobTitle: "Dev", NationalIDNumber: "123"})
	require.NoError(t, err)
	assert.Equal(t, "123", e.NationalIDNumber)
}

func TestDownloadCV_SavesFile(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("%PDF-1.7 cv"))
	}))
	defer storage.Close()

	fc := &fakeClient{CVURL: storage.URL + "/cvs/ana.pdf?sig=abc"}
	svc := NewHRService(fc, storage.Client())

	dir := filepath.Join(t.TempDir(), "downloads")
	path, err := svc.DownloadCV(context.Background(), "ana.pdf", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ana.pdf"), path)
	assert.Equal(t, "ana.pdf", fc.LastCVName)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 cv", string(b))
}

func TestDownloadCV_Errors(t *testing.T) {
	svc := NewHRService(&fakeClient{}, nil)
	_, err := svc.DownloadCV(context.Background(), "  ", t.TempDir())
	require.Error(t, err)

	boom := errors.New("forbidden")
	svc = NewHRService(&fakeClient{CVErr: boom}, nil)
	_, err = svc.DownloadCV(context.Background(), "x.pdf", t.TempDir())
	require.ErrorIs(t, err, boom)

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer storage.Close()
	svc = NewHRService(&fakeClient{CVURL: storage.URL}, storage.Client())
	_, err = svc.DownloadCV(context.Background(), "x.pdf", t.TempDir())
	require.ErrorContains(t, err, "download x.pdf")
}

func TestDownloadCV_StripsDirectories(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer storage.Close()

	dir := t.TempDir()
	path, err := NewHRService(&fakeClient{CVURL: storage.URL}, storage.Client()).
		DownloadCV(context.Background(), "../../etc/evil.pdf", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "evil.pdf"), path)
}
