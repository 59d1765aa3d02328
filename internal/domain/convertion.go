package domain

import (
	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
)

func convertUser(user *entity.User) *model.User {
	if user == nil {
		return nil
	}

	var name *string
	if user.Name.Valid {
		name = &user.Name.String
	}

	return &model.User{
		ID:    user.ID,
		Name:  name,
		Email: user.Email,
	}
}

func convertFind(find *entity.Find, answerCount int64) model.Find {
	var user *model.User
	if find.UserID.Valid {
		user = convertUser(&find.User)
	}

	var authorName *string
	if find.AuthorName.Valid {
		authorName = &find.AuthorName.String
	}

	images := []string(find.Images)
	if images == nil {
		images = []string{}
	}

	return model.Find{
		ID:          find.ID,
		Title:       find.Title,
		Description: find.Description,
		Location:    find.Location,
		Category:    string(find.Category),
		Images:      images,
		AuthorName:  authorName,
		CreatedAt:   find.CreatedAt,
		User:        user,
		AnswerCount: answerCount,
	}
}

func convertAnswer(answer *entity.Answer) model.Answer {
	var user *model.User
	if answer.UserID.Valid {
		user = convertUser(&answer.User)
	}

	var verdict *string
	if answer.Verdict.Valid {
		verdict = &answer.Verdict.String
	}

	var authorName *string
	if answer.AuthorName.Valid {
		authorName = &answer.AuthorName.String
	}

	return model.Answer{
		ID:         answer.ID,
		Content:    answer.Content,
		Verdict:    verdict,
		FindID:     answer.FindID,
		AuthorName: authorName,
		User:       user,
		CreatedAt:  answer.CreatedAt,
	}
}

func convertAPIKey(key *entity.APIKey) model.APIKey {
	var createdBy *model.User
	if key.CreatedByUser.ID != "" {
		createdBy = convertUser(&key.CreatedByUser)
	}

	return model.APIKey{
		ID:         key.ID,
		Name:       key.Name,
		KeyPreview: maskKey(key.Key),
		IsActive:   key.IsActive,
		CreatedAt:  key.CreatedAt,
		LastUsedAt: key.LastUsedAt,
		CreatedBy:  createdBy,
	}
}

// maskKey shows only the first and last eight characters of a secret. Keys
// too short to preview both ends are fully masked.
func maskKey(key string) string {
	if len(key) <= 16 {
		return "****"
	}

	return key[:8] + "..." + key[len(key)-8:]
}
