package resumes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-diagnostics/internal/diagnostics/advice"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func multipartUpload(t *testing.T, fileName, content, jd string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if fileName != "" {
		fw, err := mw.CreateFormFile("resume", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if jd != "" {
		if err := mw.WriteField("job_description", jd); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestUploadThenFetch(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "jane.txt", sampleResume, "Python and AWS")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created ResumeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ResumeID == "" || created.Analysis == nil {
		t.Fatalf("expected id and analysis, got %+v", created)
	}
	if created.Analysis.JDMatch == nil {
		t.Fatalf("expected jdMatch when a job description is posted")
	}
	if created.JobDescription != "Python and AWS" {
		t.Fatalf("unexpected job description %q", created.JobDescription)
	}

	getResp := doJSON(r, http.MethodGet, "/api/v1/resumes/"+created.ResumeID, "")
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}

	listResp := doJSON(r, http.MethodGet, "/api/v1/resumes?limit=500", "")
	if listResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listResp.Code)
	}
	var list struct {
		Items []ResumeResponse `json:"items"`
		Limit int              `json:"limit"`
	}
	if err := json.Unmarshal(listResp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Items) != 1 || list.Limit != 50 {
		t.Fatalf("unexpected list %+v", list)
	}
	if list.Items[0].Analysis != nil {
		t.Fatalf("list items should not embed the analysis")
	}
}

func TestUploadRequiresFile(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "", "", "jd only")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUploadUnsupportedType(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "photo.png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR", "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "unsupported_type") {
		t.Fatalf("expected unsupported_type code, got %s", resp.Body.String())
	}
}

func TestGetUnknownResume(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doJSON(r, http.MethodGet, "/api/v1/resumes/6f1c1d2e-1111-4222-8333-444455556666", "")

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doJSON(r, http.MethodPost, "/api/v1/analyze", `{"resumeText":"Skills: Python, SQL\n\nExperience: 2 years"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out AnalysisResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(out.ExplicitSkills, ",") != "python,sql" {
		t.Fatalf("unexpected skills %v", out.ExplicitSkills)
	}
	if out.ExperienceYears != 2 {
		t.Fatalf("unexpected years %v", out.ExperienceYears)
	}

	bad := doJSON(r, http.MethodPost, "/api/v1/analyze", `{"resumeText":`)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", bad.Code)
	}
}

func TestAnalyzeEmptyTextReturnsNoTextAdvice(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{`{"resumeText":""}`, `{}`} {
		resp := doJSON(r, http.MethodPost, "/api/v1/analyze", body)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", body, resp.Code, resp.Body.String())
		}
		var out AnalysisResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if out.ATSScore != 0 {
			t.Fatalf("%s: expected zero score, got %d", body, out.ATSScore)
		}
		for category, points := range out.ScoreBreakdown {
			if points != 0 {
				t.Fatalf("%s: expected %s to be 0, got %d", body, category, points)
			}
		}
		if len(out.Improvements) != 1 || out.Improvements[0] != advice.NoTextAdvice {
			t.Fatalf("%s: unexpected improvements %v", body, out.Improvements)
		}
	}
}

func TestReanalyzeEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "jane.txt", sampleResume, "Python and AWS")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created ResumeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	path := "/api/v1/resumes/" + created.ResumeID + "/reanalyze"

	kept := doJSON(r, http.MethodPost, path, "")
	if kept.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", kept.Code, kept.Body.String())
	}
	var keptOut ResumeResponse
	if err := json.Unmarshal(kept.Body.Bytes(), &keptOut); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if keptOut.JobDescription != "Python and AWS" || keptOut.Analysis == nil || keptOut.Analysis.JDMatch == nil {
		t.Fatalf("expected stored job description to be reused, got %+v", keptOut)
	}

	replaced := doJSON(r, http.MethodPost, path, `{"jobDescription":"Docker and Kubernetes"}`)
	var replacedOut ResumeResponse
	if err := json.Unmarshal(replaced.Body.Bytes(), &replacedOut); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if replaced.Code != http.StatusOK || replacedOut.JobDescription != "Docker and Kubernetes" {
		t.Fatalf("expected job description to be replaced, got %d %+v", replaced.Code, replacedOut)
	}

	if bad := doJSON(r, http.MethodPost, path, `{"jobDescription":`); bad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", bad.Code)
	}
	missing := doJSON(r, http.MethodPost, "/api/v1/resumes/6f1c1d2e-1111-4222-8333-444455556666/reanalyze", "")
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.Code)
	}
}

func TestMatchEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doJSON(r, http.MethodPost, "/api/v1/jd-match", `{"resumeText":"python django sql","jobDescription":"python aws kubernetes"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out MatchResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.MatchPercent != 33 {
		t.Fatalf("expected 33, got %d", out.MatchPercent)
	}

	bad := doJSON(r, http.MethodPost, "/api/v1/jd-match", `{"resumeText":"a","jobDescription":"b","mode":"fuzzy"}`)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown mode, got %d", bad.Code)
	}
}

func TestRolesEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	resp := doJSON(r, http.MethodPost, "/api/v1/roles", `{"skills":["html","css","javascript"],"experienceYears":0}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out RolesResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.SuggestedRole != "Frontend Developer" {
		t.Fatalf("unexpected role %q", out.SuggestedRole)
	}

	bad := doJSON(r, http.MethodPost, "/api/v1/roles", `{}`)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", bad.Code)
	}
}

func TestProfileEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	resp := doJSON(r, http.MethodGet, "/api/v1/profile", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["version"] != svc.Engine.Profile().Version {
		t.Fatalf("unexpected profile version %v", out["version"])
	}
}
