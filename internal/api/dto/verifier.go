package dto

// VerifierChallengeDTO 随机抽出的问答题，answer 永远不下发
type VerifierChallengeDTO struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}
