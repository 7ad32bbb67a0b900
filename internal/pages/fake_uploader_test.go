package pages

import (
	"github.com/juju/errors"

	"github.com/buckleypaul/avrup/internal/avrdude"
	"github.com/buckleypaul/avrup/internal/serial"
	"github.com/buckleypaul/avrup/internal/store"
)

type fakeUploader struct {
	outcome avrdude.Outcome
	calls   []avrdude.Request
}

func (f *fakeUploader) Upload(req avrdude.Request) avrdude.Outcome {
	f.calls = append(f.calls, req)
	return f.outcome
}

type fakeRecorder struct {
	records []store.UploadRecord
	err     error
}

func (f *fakeRecorder) AddUpload(r store.UploadRecord) (store.UploadRecord, error) {
	if f.err != nil {
		return r, f.err
	}
	f.records = append(f.records, r)
	return r, nil
}

type fakeLister struct {
	ports []serial.PortInfo
	err   error
	calls int
}

func (f *fakeLister) list() ([]serial.PortInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, errors.Trace(f.err)
	}
	return f.ports, nil
}
