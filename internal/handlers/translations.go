package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"mlingo-backend/internal/models"
	"mlingo-backend/internal/respond"
	"mlingo-backend/internal/storage"
)

// AddLanguage registers a language tag
// @Summary Add a language
// @Tags translations
// @Accept json
// @Produce json
// @Param language body models.AddLanguageRequest true "Language tag"
// @Success 200 {object} respond.Envelope
// @Router /v1/addLanguage [post]
func (h *Handler) AddLanguage(w http.ResponseWriter, r *http.Request) {
	var req models.AddLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.Language == "" {
		respond.JSON(w, http.StatusBadRequest, "Language required", nil)
		return
	}

	lang, err := h.store.CreateLanguage(r.Context(), req.Language)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, "Language added successfully", lang)
}

// GetAllLanguages lists every registered language
// @Summary List languages
// @Tags translations
// @Produce json
// @Success 200 {object} respond.Envelope
// @Router /v1/getAllLanguage [get]
func (h *Handler) GetAllLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.store.ListLanguages(r.Context())
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, "Languages fetched successfully", languages)
}

// AddTranslation creates a key and its translated values
// @Summary Add a translation key with values
// @Tags translations
// @Accept json
// @Produce json
// @Param translation body models.TranslateRequest true "Key with translations per language"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "Unknown language"
// @Router /v1/addTranslation [post]
func (h *Handler) AddTranslation(w http.ResponseWriter, r *http.Request) {
	h.writeTranslations(w, r, false)
}

// UpdateTranslation updates the values of an existing key
// @Summary Update translations of a key
// @Tags translations
// @Accept json
// @Produce json
// @Param translation body models.TranslateRequest true "Key with translations per language"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "Unknown key or language"
// @Router /v1/updateTranslation [put]
func (h *Handler) UpdateTranslation(w http.ResponseWriter, r *http.Request) {
	h.writeTranslations(w, r, true)
}

func (h *Handler) writeTranslations(w http.ResponseWriter, r *http.Request, update bool) {
	var req models.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.Key == "" {
		respond.JSON(w, http.StatusBadRequest, "Key required", nil)
		return
	}

	status := req.Status
	if status == "" {
		status = models.KeyStatusPublished
	}

	err := h.store.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		var key *models.Key
		var err error
		if update {
			key, err = h.store.GetKeyByName(r.Context(), tx, req.Key)
		} else {
			key, err = h.store.UpsertKey(r.Context(), tx, req.Key, status)
		}
		if err != nil {
			return err
		}

		for _, value := range req.Translations {
			lang, err := h.store.GetLanguageByTag(r.Context(), tx, value.Language)
			if err != nil {
				return err
			}
			if update {
				err = h.store.UpdateTranslation(r.Context(), tx, key.ID, lang.ID, value.Translation)
			} else {
				err = h.store.InsertTranslation(r.Context(), tx, key.ID, lang.ID, value.Translation)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			respond.JSON(w, http.StatusNotFound, "Key not found", nil)
			return
		}
		if errors.Is(err, storage.ErrLanguageNotFound) {
			respond.JSON(w, http.StatusNotFound, "Language not found", nil)
			return
		}
		respond.Internal(w, err)
		return
	}

	if update {
		respond.JSON(w, http.StatusOK, "Translation updated successfully", nil)
		return
	}
	respond.JSON(w, http.StatusOK, "Translation added successfully", nil)
}

// GetAllTranslations lists every key with its values grouped per language
// @Summary List all translations
// @Tags translations
// @Produce json
// @Success 200 {object} respond.Envelope
// @Router /v1/getAllTranslations [get]
func (h *Handler) GetAllTranslations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListTranslations(r.Context())
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, "Translations fetched successfully", groupTranslations(rows))
}

// GetLanguageKeys lists the keys translated into one language
// @Summary List keys for a language
// @Tags translations
// @Produce json
// @Param languageId query int true "Language id"
// @Success 200 {object} respond.Envelope
// @Router /v1/getLanguageKeys [get]
func (h *Handler) GetLanguageKeys(w http.ResponseWriter, r *http.Request) {
	languageID, err := strconv.ParseInt(r.URL.Query().Get("languageId"), 10, 64)
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid languageId", nil)
		return
	}

	rows, err := h.store.ListKeysForLanguage(r.Context(), languageID)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, "Keys fetched successfully", rows)
}

type translationGroup struct {
	KeyID        int64                     `json:"key_id"`
	Key          string                    `json:"key"`
	Status       string                    `json:"status"`
	Translations []models.TranslationValue `json:"translations"`
}

func groupTranslations(rows []storage.TranslationRow) []translationGroup {
	groups := make([]translationGroup, 0)
	index := make(map[int64]int)
	for _, row := range rows {
		i, ok := index[row.KeyID]
		if !ok {
			groups = append(groups, translationGroup{
				KeyID:  row.KeyID,
				Key:    row.Key,
				Status: row.Status,
			})
			i = len(groups) - 1
			index[row.KeyID] = i
		}
		groups[i].Translations = append(groups[i].Translations, models.TranslationValue{
			Language:    row.Language,
			Translation: row.Translation,
		})
	}
	return groups
}
