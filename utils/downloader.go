package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MirrorImages downloads each image URL and uploads it to the bucket under
// folderPrefix. The result has the same order as urls; an image that fails
// to mirror keeps its original URL.
func MirrorImages(ctx context.Context, bucket *Bucket, urls []string, folderPrefix string) []string {
	mirrored := make([]string, len(urls))
	copy(mirrored, urls)

	var mu sync.Mutex
	var wg sync.WaitGroup
	client := &http.Client{Timeout: 30 * time.Second}

	// Limit concurrency
	semaphore := make(chan struct{}, 5)

	for i, imageURL := range urls {
		if imageURL == "" {
			continue
		}
		wg.Add(1)
		go func(i int, imageURL string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			objectKey := fmt.Sprintf("%s/%d_%s", folderPrefix, i, imageFilename(imageURL, i))
			if err := downloadAndUpload(ctx, client, bucket, imageURL, objectKey); err != nil {
				zap.S().Warnf("Failed to mirror %s: %v", imageURL, err)
				return
			}

			mu.Lock()
			mirrored[i] = bucket.PublicURL(objectKey)
			mu.Unlock()
		}(i, imageURL)
	}

	wg.Wait()
	return mirrored
}

// imageFilename derives an object name from the URL path, dropping the query
func imageFilename(imageURL string, i int) string {
	filename := path.Base(strings.SplitN(imageURL, "?", 2)[0])
	if filename == "" || filename == "." || filename == "/" || len(filename) > 200 {
		return fmt.Sprintf("image_%d", i)
	}
	if path.Ext(filename) == "" {
		filename += ".jpg"
	}
	return filename
}

func downloadAndUpload(ctx context.Context, client *http.Client, bucket *Bucket, imageURL, objectKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (macOS) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	// PutObject needs a seekable body to compute the payload hash
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = bucket.UploadFile(ctx, bytes.NewReader(bodyBytes), objectKey, contentType)
	return err
}
