package predictor

import (
	"encoding/json"
	"errors"
	"fmt"

	"stancewatch/internal/model"
)

var (
	ErrInvalidTargetType = errors.New("invalid target type, must be either 'club' or 'referee'")
	ErrMissingTarget     = errors.New("target is required when target type is 'club'")
)

// Job asks for one article to be classified against one target.
type Job struct {
	ArticleID  int64  `json:"article_id"`
	Target     string `json:"target"`
	TargetType string `json:"target_type"`
}

// ResolveTarget applies the target rules: clubs need a name and referee
// predictions always use the fixed referee target.
func ResolveTarget(target, targetType string) (string, error) {
	if !model.ValidTargetType(targetType) {
		return "", ErrInvalidTargetType
	}
	if targetType == model.TargetTypeReferee {
		return model.RefereeTarget, nil
	}
	if target == "" {
		return "", ErrMissingTarget
	}
	return target, nil
}

func NewJob(articleID int64, target, targetType string) (Job, error) {
	resolved, err := ResolveTarget(target, targetType)
	if err != nil {
		return Job{}, err
	}
	return Job{ArticleID: articleID, Target: resolved, TargetType: targetType}, nil
}

func (j Job) Encode() (string, error) {
	data, err := json.Marshal(j)
	if err != nil {
		return "", fmt.Errorf("encode job: %w", err)
	}
	return string(data), nil
}

func DecodeJob(data string) (Job, error) {
	var j Job
	if err := json.Unmarshal([]byte(data), &j); err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	if j.ArticleID <= 0 {
		return Job{}, fmt.Errorf("decode job: missing article_id")
	}
	if _, err := ResolveTarget(j.Target, j.TargetType); err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	return j, nil
}
