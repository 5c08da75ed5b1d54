package blobclient

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// UploadFile pushes a local file to Azure Blob Storage, overwriting any
// existing blob of the same name. blobName may contain a folder prefix
// ("job_type/Category/file.parquet").
func UploadFile(ctx context.Context, connString, container, localPath, blobName string) error {
	if connString == "" {
		return fmt.Errorf("blobclient: missing env AZURE_STORAGE_CONNECTION_STRING")
	}

	client, err := azblob.NewClientFromConnectionString(connString, nil)
	if err != nil {
		return fmt.Errorf("blobclient: connect: %w", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("blobclient: open %s: %w", localPath, err)
	}
	defer f.Close()

	fmt.Printf("[azure] uploading %s to container %q as %s\n", localPath, container, blobName)
	if _, err := client.UploadFile(ctx, container, blobName, f, nil); err != nil {
		return fmt.Errorf("blobclient: upload %s: %w", blobName, err)
	}
	fmt.Println("[azure] upload OK")
	return nil
}
