package sync

import (
	"context"
	"fmt"
	"os"

	"drive-transcribe-go/internal/types"
)

// fakeStorage is an in-memory Storage used across the filter, stager
// and pipeline tests. Every call is appended to events so ordering can
// be asserted; two fakes can share one events slice via the pointer.
type fakeStorage struct {
	audio    map[string][]types.AudioFile // folderID -> listing
	content  map[string][]byte            // fileID -> download payload
	existing map[string]map[string]string // folderID -> name -> id
	uploads  []string
	moves    []string
	events   *[]string
	nextID   int

	findCalls   int
	downloadErr error
	uploadErr   error
	moveErr     error
}

func newFakeStorage() *fakeStorage {
	ev := []string{}
	return &fakeStorage{
		audio:    map[string][]types.AudioFile{},
		content:  map[string][]byte{},
		existing: map[string]map[string]string{},
		events:   &ev,
	}
}

func (s *fakeStorage) record(ev string) {
	*s.events = append(*s.events, ev)
}

func (s *fakeStorage) addExisting(folderID, name, id string) {
	if s.existing[folderID] == nil {
		s.existing[folderID] = map[string]string{}
	}
	s.existing[folderID][name] = id
}

func (s *fakeStorage) ListAudio(_ context.Context, folderID string) ([]types.AudioFile, error) {
	s.record("list:" + folderID)
	return s.audio[folderID], nil
}

func (s *fakeStorage) FindByName(_ context.Context, folderID, name, _ string) (*types.StoredFile, error) {
	s.findCalls++
	s.record("find:" + name)
	if id, ok := s.existing[folderID][name]; ok {
		return &types.StoredFile{ID: id, Name: name}, nil
	}
	return nil, nil
}

func (s *fakeStorage) Download(_ context.Context, fileID, destPath string) error {
	s.record("download:" + fileID)
	if s.downloadErr != nil {
		return s.downloadErr
	}
	return os.WriteFile(destPath, s.content[fileID], 0644)
}

func (s *fakeStorage) Upload(_ context.Context, _, folderID, name string) (string, error) {
	s.record("upload:" + name)
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.nextID++
	id := fmt.Sprintf("file-%d", s.nextID)
	s.addExisting(folderID, name, id)
	s.uploads = append(s.uploads, name)
	return id, nil
}

func (s *fakeStorage) Move(_ context.Context, fileID, _, removeParent string) error {
	s.record("move:" + fileID)
	if s.moveErr != nil {
		return s.moveErr
	}
	s.moves = append(s.moves, fileID)
	kept := s.audio[removeParent][:0]
	for _, f := range s.audio[removeParent] {
		if f.ID != fileID {
			kept = append(kept, f)
		}
	}
	s.audio[removeParent] = kept
	return nil
}

func (s *fakeStorage) EnsureChildFolder(_ context.Context, parentID, name string) (string, error) {
	s.record("ensure:" + name)
	if id, ok := s.existing[parentID][name]; ok {
		return id, nil
	}
	s.nextID++
	id := fmt.Sprintf("folder-%d", s.nextID)
	s.addExisting(parentID, name, id)
	return id, nil
}

// fakeTranscriber returns canned text and records the staged paths it
// was handed.
type fakeTranscriber struct {
	text  string
	err   error
	paths []string
}

func (t *fakeTranscriber) Transcribe(_ context.Context, audioPath string) (string, error) {
	t.paths = append(t.paths, audioPath)
	if t.err != nil {
		return "", t.err
	}
	return t.text, nil
}
