package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	drive "google.golang.org/api/drive/v3"

	"drive-transcribe-go/internal/types"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Client wraps one authenticated Drive account.
type Client struct {
	svc *drive.Service
}

// ListAudio returns every recognized audio file directly under folderID,
// newest created first. The processed subfolder's contents are not
// children of folderID, so archived files never reappear here.
func (c *Client) ListAudio(ctx context.Context, folderID string) ([]types.AudioFile, error) {
	var out []types.AudioFile
	pageToken := ""
	for {
		call := c.svc.Files.List().
			Q(audioListQuery(folderID)).
			Fields("nextPageToken, files(id, name, mimeType, size, createdTime, modifiedTime)").
			OrderBy("createdTime desc").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list audio files: %w", err)
		}
		for _, f := range res.Files {
			out = append(out, types.AudioFile{
				ID:           f.Id,
				Name:         f.Name,
				MimeType:     f.MimeType,
				Size:         f.Size,
				CreatedTime:  f.CreatedTime,
				ModifiedTime: f.ModifiedTime,
			})
		}
		if res.NextPageToken == "" {
			return out, nil
		}
		pageToken = res.NextPageToken
	}
}

// FindByName looks up a direct child of folderID by exact name and mime
// type. Returns nil when nothing matches.
func (c *Client) FindByName(ctx context.Context, folderID, name, mimeType string) (*types.StoredFile, error) {
	res, err := c.svc.Files.List().
		Q(childByNameQuery(folderID, name, mimeType)).
		Fields("files(id, name, modifiedTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("find %q: %w", name, err)
	}
	if len(res.Files) == 0 {
		return nil, nil
	}
	f := res.Files[0]
	return &types.StoredFile{ID: f.Id, Name: f.Name, ModifiedTime: f.ModifiedTime}, nil
}

// Download streams a remote file into destPath.
func (c *Client) Download(ctx context.Context, fileID, destPath string) error {
	res, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("get media: %w", err)
	}
	defer res.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	if _, err := io.Copy(out, res.Body); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return out.Close()
}

// Upload creates a new file under folderID from a local path and
// returns the new file id.
func (c *Client) Upload(ctx context.Context, localPath, folderID, name string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	created, err := c.svc.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{folderID},
	}).Media(f).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", name, err)
	}
	return created.Id, nil
}

// Move reparents a file in a single update call.
func (c *Client) Move(ctx context.Context, fileID, addParent, removeParent string) error {
	_, err := c.svc.Files.Update(fileID, nil).
		AddParents(addParent).
		RemoveParents(removeParent).
		Fields("id, parents").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("move file: %w", err)
	}
	return nil
}

// EnsureChildFolder returns the id of the named subfolder of parentID,
// creating it when absent. At most one is ever created; later runs find
// and reuse the existing one.
func (c *Client) EnsureChildFolder(ctx context.Context, parentID, name string) (string, error) {
	existing, err := c.FindByName(ctx, parentID, name, folderMimeType)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	created, err := c.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}
	return created.Id, nil
}

func audioListQuery(folderID string) string {
	mimes := make([]string, 0, len(types.AudioMimeTypes))
	for _, m := range types.AudioMimeTypes {
		mimes = append(mimes, fmt.Sprintf("mimeType='%s'", escapeQueryValue(m)))
	}
	return fmt.Sprintf("'%s' in parents and (%s) and trashed=false",
		escapeQueryValue(folderID), strings.Join(mimes, " or "))
}

func childByNameQuery(folderID, name, mimeType string) string {
	return fmt.Sprintf("'%s' in parents and name='%s' and mimeType='%s' and trashed=false",
		escapeQueryValue(folderID), escapeQueryValue(name), escapeQueryValue(mimeType))
}

// escapeQueryValue escapes a value embedded in a Drive search query.
// Names containing quotes or backslashes would otherwise malform the
// query string.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
