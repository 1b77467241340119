package sns

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if out, _ := args.Get(0).(*sns.PublishOutput); out != nil {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSendAlert_Unconfigured(t *testing.T) {
	m, err := NewMessenger(&config.Config{MessageFrom: "SENTROBOT"}) // recipient missing
	require.NoError(t, err)

	res := m.SendAlert(context.Background(), "Door", "opened", "2024-01-01 10:00:00")

	assert.Equal(t, domain.DispatchSkipped, res.Status)
}

func TestSendAlert_PublishesFormattedBody(t *testing.T) {
	pub := &mockPublisher{}
	m := &messenger{client: pub, from: "SENTROBOT", to: "+15550001111"}

	pub.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return *in.PhoneNumber == "+15550001111" &&
			*in.Message == "SENT Robot Alert\n\nTitle: Door\nMessage: opened\nTime: 2024-01-01 10:00:00" &&
			*in.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue == "SENTROBOT"
	})).Return(&sns.PublishOutput{}, nil)

	res := m.SendAlert(context.Background(), "Door", "opened", "2024-01-01 10:00:00")

	assert.Equal(t, domain.DispatchSent, res.Status)
	pub.AssertExpectations(t)
}

func TestSendAlert_PublishFailureIsCaught(t *testing.T) {
	pub := &mockPublisher{}
	m := &messenger{client: pub, from: "SENTROBOT", to: "+15550001111"}

	pub.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	res := m.SendAlert(context.Background(), "Door", "opened", "2024-01-01 10:00:00")

	assert.Equal(t, domain.DispatchFailed, res.Status)
	assert.ErrorContains(t, res.Err, "throttled")
}
