package dto

import "github.com/lshigami/intuity-sync/internal/model"

// PublishQuestionResult always reports Success; Synced tells whether the
// remote backend confirmed the write.
type PublishQuestionResult struct {
	Success  bool           `json:"success"`
	Synced   bool           `json:"synced"`
	Question model.Question `json:"question" swaggertype:"object"`
}

type SubmitResponseResult struct {
	Success  bool           `json:"success"`
	Synced   bool           `json:"synced"`
	Response model.Response `json:"response" swaggertype:"object"`
}

// CurrentQuestionResult carries Found=false instead of an error when no
// question has been published anywhere.
type CurrentQuestionResult struct {
	Found    bool            `json:"found"`
	Question *model.Question `json:"question,omitempty" swaggertype:"object"`
}

type SyncReport struct {
	Skipped   bool `json:"skipped"`
	Attempted int  `json:"attempted"`
	Synced    int  `json:"synced"`
	Failed    int  `json:"failed"`
}

type StatusResponse struct {
	NetworkReachable bool `json:"network_reachable"`
	RemoteConnected  bool `json:"remote_connected"`
	RemoteConfigured bool `json:"remote_configured"`
	Reachable        bool `json:"reachable"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
