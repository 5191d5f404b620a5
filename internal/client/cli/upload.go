package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/wintakam/wintakam/internal/netx"
)

// uploadFn is a test seam for the presigned PUT upload.
var uploadFn = netx.UploadToPresignedURL

// Upload pushes a local photo to object storage via a backend-presigned URL
// and registers it with the listing. Only the listing owner may do this; the
// backend enforces that.
func (a *App) Upload(ctx context.Context, propertyID, filePath string) error {
	if !a.isLoggedIn() {
		fmt.Println("Connectez-vous d'abord (login).")
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("Fichier illisible : %s\n", err.Error())
		return nil
	}

	key, url, err := a.gw.PresignImageUpload(ctx, propertyID)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}

	if err := uploadFn(ctx, url, data, http.DetectContentType(data)); err != nil {
		fmt.Printf("Échec de l'envoi : %s\n", err.Error())
		return nil
	}

	if err := a.gw.AttachImage(ctx, propertyID, key); err != nil {
		fmt.Println(err.Error())
		return nil
	}

	fmt.Println("Photo ajoutée.")
	return nil
}
