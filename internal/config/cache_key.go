package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key tracking a user's active login session.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// ExamPaperKey returns the cache key for a course's sanitized exam paper.
func (r *CacheKeyStruct) ExamPaperKey(courseID string) string {
	return fmt.Sprintf("course:%s:exam_paper", courseID)
}

var CacheKey = NewCacheKeyStruct()
