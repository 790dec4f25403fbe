package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateReviewRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        CreateReviewRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  CreateReviewRequest{FoodID: "f-1", Rating: 4, Comment: "good"},
		},
		{
			name: "valid without comment",
			req:  CreateReviewRequest{FoodID: "f-1", Rating: 1},
		},
		{
			name:       "missing food",
			req:        CreateReviewRequest{Rating: 3},
			wantFields: []string{"food_id"},
		},
		{
			name:       "rating too low",
			req:        CreateReviewRequest{FoodID: "f-1", Rating: 0},
			wantFields: []string{"rating"},
		},
		{
			name:       "rating too high",
			req:        CreateReviewRequest{FoodID: "f-1", Rating: 6},
			wantFields: []string{"rating"},
		},
		{
			name:       "comment too long",
			req:        CreateReviewRequest{FoodID: "f-1", Rating: 3, Comment: strings.Repeat("x", 1001)},
			wantFields: []string{"comment"},
		},
		{
			name:       "everything wrong at once",
			req:        CreateReviewRequest{Rating: 9, Comment: strings.Repeat("x", 1001)},
			wantFields: []string{"food_id", "rating", "comment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := tt.req.Validate()
			if len(tt.wantFields) == 0 {
				assert.Nil(t, fields)
				return
			}
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestCreateFoodRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        CreateFoodRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  CreateFoodRequest{Name: "Pho", Price: 11.5},
		},
		{
			name:       "missing name",
			req:        CreateFoodRequest{},
			wantFields: []string{"name"},
		},
		{
			name:       "blank name",
			req:        CreateFoodRequest{Name: "   "},
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			req:        CreateFoodRequest{Name: strings.Repeat("a", 121)},
			wantFields: []string{"name"},
		},
		{
			name:       "negative price",
			req:        CreateFoodRequest{Name: "Pho", Price: -1},
			wantFields: []string{"price"},
		},
		{
			name:       "description too long",
			req:        CreateFoodRequest{Name: "Pho", Description: strings.Repeat("d", 2001)},
			wantFields: []string{"description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := tt.req.Validate()
			if len(tt.wantFields) == 0 {
				assert.Nil(t, fields)
				return
			}
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}
