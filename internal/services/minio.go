package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"cioccolato_back_end/internal/config"
	"cioccolato_back_end/internal/database"
)

// UploadProductImage pousse une image dans le bucket et retourne son URL
// publique. Le nom est préfixé par un UUID pour éviter les collisions.
func UploadProductImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := config.Getenv("MINIO_BUCKET", "prodotti")
	objectName := uuid.NewString() + path.Ext(file.Filename)

	_, err = database.MinIO.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName), nil
}
