package s3

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "day/cv.pdf", want: "day/cv.pdf"},
		{name: "simple prefix", prefix: "resumes", key: "day/cv.pdf", want: "resumes/day/cv.pdf"},
		{name: "prefix trailing slash", prefix: "resumes/", key: "day/cv.pdf", want: "resumes/day/cv.pdf"},
		{name: "prefix and key slashes", prefix: "/resumes/", key: "/day/cv.pdf", want: "resumes/day/cv.pdf"},
		{name: "empty key", prefix: "resumes", key: "", want: "resumes"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestApplyEncryption(t *testing.T) {
	kms := &s3.PutObjectInput{}
	applyEncryption(kms, "key-1")
	if kms.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("expected aws:kms, got %q", kms.ServerSideEncryption)
	}
	if aws.ToString(kms.SSEKMSKeyId) != "key-1" {
		t.Fatalf("expected kms key id, got %q", aws.ToString(kms.SSEKMSKeyId))
	}

	aes := &s3.PutObjectInput{}
	applyEncryption(aes, "")
	if aes.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256, got %q", aes.ServerSideEncryption)
	}
	if aes.SSEKMSKeyId != nil {
		t.Fatalf("expected no kms key id")
	}
}
