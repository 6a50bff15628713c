package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Cloudinary configuration via environment variables:
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET,
// CLOUDINARY_FOLDER (optional)

// UploadBase64Image uploads a base64 image (data URL or raw base64) and
// returns the hosted URL, or "" on failure. Declared as a variable so tests
// can run without Cloudinary credentials.
var UploadBase64Image = func(base64Src string, publicID string) string {
	return uploadBase64(base64Src, publicID, "image", "data:image/jpeg;base64,")
}

// UploadBase64Document uploads an application document (PDF or image
// payload) as a raw asset and returns the hosted URL, or "" on failure.
var UploadBase64Document = func(base64Src string, publicID string) string {
	return uploadBase64(base64Src, publicID, "raw", "data:application/pdf;base64,")
}

func uploadBase64(base64Src, publicID, resourceType, dataPrefix string) string {
	if base64Src == "" {
		return ""
	}

	payload := base64Src
	if i := strings.Index(base64Src, ","); i != -1 {
		payload = base64Src[i+1:]
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("cloudinary upload skipped: missing CLOUDINARY_* env vars")
		return ""
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/" + resourceType + "/upload"

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	// Cloudinary signed uploads require a SHA1 over the sorted params + secret
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	form := url.Values{}
	form.Add("file", dataPrefix+payload)
	form.Add("api_key", apiKey)
	form.Add("public_id", finalPublicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("cloudinary upload: %v", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("cloudinary upload: %v", err)
		return ""
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Printf("cloudinary upload: %v", err)
		return ""
	}

	if res.StatusCode != http.StatusOK {
		log.Printf("cloudinary upload failed with status %d: %s", res.StatusCode, string(body))
		return ""
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &cloudRes); err != nil {
		log.Printf("cloudinary upload: bad response: %v", err)
		return ""
	}
	if cloudRes.Error.Message != "" {
		log.Printf("cloudinary upload: %s", cloudRes.Error.Message)
		return ""
	}

	if cloudRes.SecureURL != "" {
		return cloudRes.SecureURL
	}
	return cloudRes.URL
}

// DeleteImage removes a previously uploaded image given its hosted URL.
var DeleteImage = func(imageURL string) bool {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return false
	}

	parts := strings.Split(imageURL, "/")
	if len(parts) < 2 {
		return false
	}
	lastPart := parts[len(parts)-1]
	publicID := strings.Split(lastPart, ".")[0]

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return false
	}

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	form := url.Values{}
	form.Add("public_id", finalPublicID)
	form.Add("api_key", apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/destroy"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode != http.StatusOK {
		return false
	}

	var deleteRes struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &deleteRes); err != nil {
		return false
	}
	return deleteRes.Result == "ok"
}
