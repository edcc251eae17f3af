package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload Sheet Asset
// @Description Upload an attachment for a problem sheet (admin only)
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param sheetId path string true "Sheet ID"
// @Param file formData file true "Asset file"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/sheets/{sheetId}/assets [post]
func (h *MediaHandler) UploadSheetAsset(c *fiber.Ctx) error {
	sheetID := c.Params("sheetId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file")
	}

	upload, err := h.mediaSvc.UploadSheetAsset(sheetID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Uploaded", upload)
}

// @Summary List Sheet Assets
// @Description List attachments for a problem sheet
// @Tags media
// @Accept json
// @Produce json
// @Param sheetId path string true "Sheet ID"
// @Success 200 {object} shared.Response{data=[]model.SheetAsset}
// @Router /api/v1/sheets/{sheetId}/assets [get]
func (h *MediaHandler) GetSheetAssets(c *fiber.Ctx) error {
	assets, err := h.mediaSvc.GetSheetAssets(c.Params("sheetId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", assets)
}

// @Summary Get Asset Download URL
// @Description Get a short-lived presigned download link for an asset
// @Tags media
// @Accept json
// @Produce json
// @Param assetId path string true "Asset ID"
// @Success 200 {object} shared.Response{data=dto.MediaURLResponse}
// @Router /api/v1/assets/{assetId}/url [get]
func (h *MediaHandler) GetSheetAssetURL(c *fiber.Ctx) error {
	url, err := h.mediaSvc.GetSheetAssetURL(c.Params("assetId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", url)
}

// @Summary Delete Sheet Asset
// @Description Delete an attachment (admin only)
// @Tags media
// @Accept json
// @Produce json
// @Param assetId path string true "Asset ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/assets/{assetId} [delete]
func (h *MediaHandler) DeleteSheetAsset(c *fiber.Ctx) error {
	if err := h.mediaSvc.DeleteSheetAsset(c.Params("assetId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Deleted", nil)
}
