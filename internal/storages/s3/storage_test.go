package s3

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type s3ServiceMock struct {
	s3iface.S3API
	mock.Mock
}

func (m *s3ServiceMock) HeadObjectWithContext(
	ctx aws.Context, input *s3.HeadObjectInput, _ ...request.Option,
) (*s3.HeadObjectOutput, error) {
	args := m.Called(aws.StringValue(input.Key))
	return &s3.HeadObjectOutput{}, args.Error(0)
}

func (m *s3ServiceMock) ListObjectsV2PagesWithContext(
	ctx aws.Context, input *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, _ ...request.Option,
) error {
	args := m.Called(aws.StringValue(input.Prefix))
	fn(args.Get(0).(*s3.ListObjectsV2Output), true)
	return args.Error(1)
}

func TestStorage_Exists(t *testing.T) {
	svc := &s3ServiceMock{}
	svc.On("HeadObjectWithContext", "tasks/present.json").Return(nil)
	svc.On("HeadObjectWithContext", "tasks/absent.json").
		Return(awserr.New(awsErrorCodeNotFound, "not found", nil))
	svc.On("HeadObjectWithContext", "tasks/broken.json").Return(errors.New("timeout"))
	st := newStorage(&Config{Bucket: "cdc"}, svc, nil, fixPrefix("tasks"))
	ctx := context.Background()

	exists, err := st.Exists(ctx, "present.json")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = st.Exists(ctx, "absent.json")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = st.Exists(ctx, "broken.json")
	assert.Error(t, err)
}

func TestStorage_ListFiles(t *testing.T) {
	svc := &s3ServiceMock{}
	svc.On("ListObjectsV2PagesWithContext", "tasks/incoming/").Return(&s3.ListObjectsV2Output{
		Contents: []*s3.Object{
			{Key: aws.String("tasks/incoming/2.json")},
			{Key: aws.String("tasks/incoming/1.json.gz")},
		},
	}, nil)
	st := newStorage(&Config{Bucket: "cdc"}, svc, nil, fixPrefix("tasks"))

	files, err := st.SubStorage("incoming").ListFiles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"1.json.gz", "2.json"}, files)
}

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, NewConfig().Validate(), errBucketIsRequired)
	cfg := NewConfig()
	cfg.Bucket = "cdc"
	assert.NoError(t, cfg.Validate())
}
