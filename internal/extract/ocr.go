package extract

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// GosseractEngine is the primary OCR engine, backed by the Tesseract C API.
type GosseractEngine struct{}

func (GosseractEngine) Recognize(imagePath, lang string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("failed to set ocr language %q: %w", lang, err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to load image %s: %w", imagePath, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr recognition failed: %w", err)
	}
	return text, nil
}

// TesseractCLIEngine is the secondary OCR engine. It shells out to the
// tesseract binary, giving a failure domain independent of the in-process
// binding.
type TesseractCLIEngine struct{}

func (TesseractCLIEngine) Recognize(imagePath, lang string) (string, error) {
	args := []string{imagePath, "stdout"}
	if lang != "" {
		args = append(args, "-l", lang)
	}
	out, err := exec.Command("tesseract", args...).Output()
	if err != nil {
		return "", fmt.Errorf("tesseract cli failed: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}
