package sns

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/domain"
)

// Channel is the dispatch channel name reported in results and logs.
const Channel = "messaging"

// Messenger pushes notifications to the messaging channel: an SNS publish
// to a fixed recipient, tagged with a fixed sender ID. Like the email
// channel, delivery is fire-and-forget.
type Messenger interface {
	SendAlert(ctx context.Context, title, message, timestamp string) domain.DispatchResult
}

// publishAPI is the slice of the SNS client the messenger uses.
type publishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type messenger struct {
	client publishAPI
	from   string
	to     string
}

// NewMessenger builds the messaging dispatcher. An incomplete from/to pair
// leaves the channel disabled: every send becomes a logged no-op. The error
// return covers AWS configuration loading only.
func NewMessenger(cfg *config.Config) (Messenger, error) {
	m := &messenger{from: cfg.MessageFrom, to: cfg.MessageTo}
	if m.from == "" || m.to == "" {
		return m, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for SNS: %w", err)
	}

	clientOpts := []func(*sns.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	m.client = sns.NewFromConfig(awsCfg, clientOpts...)
	return m, nil
}

func (m *messenger) SendAlert(ctx context.Context, title, message, timestamp string) domain.DispatchResult {
	if m.client == nil {
		slog.Info("messaging channel unconfigured, alert skipped", "title", title)
		return domain.Skipped(Channel)
	}

	body := fmt.Sprintf("SENT Robot Alert\n\nTitle: %s\nMessage: %s\nTime: %s", title, message, timestamp)
	input := &sns.PublishInput{
		PhoneNumber: aws.String(m.to),
		Message:     aws.String(body),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(m.from),
			},
		},
	}
	if _, err := m.client.Publish(ctx, input); err != nil {
		slog.Warn("messaging alert failed", "title", title, "err", err)
		return domain.Failed(Channel, err)
	}
	slog.Info("messaging alert sent", "title", title)
	return domain.Sent(Channel)
}
