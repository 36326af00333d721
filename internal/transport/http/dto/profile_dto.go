package dto

type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

type UpdateBioResponse struct {
	OK      bool            `json:"ok"`
	Verdict VerdictResponse `json:"verdict"`
}
