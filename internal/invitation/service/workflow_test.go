package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
	"github.com/wattlehq/gatepass/internal/invitation/store"
)

type recordingHook struct {
	sent []DeliveryContext
	err  error
}

func (h *recordingHook) SendInvitation(_ context.Context, dc DeliveryContext) error {
	if h.err != nil {
		return h.err
	}
	h.sent = append(h.sent, dc)
	return nil
}

func newWorkflow(st store.Store, allocation int, hook NotificationHook) *WorkflowService {
	return &WorkflowService{
		Store: st,
		Registry: &RegistryService{
			Store:               st,
			BaseURL:             "https://example.com",
			DefaultDurationDays: 7,
		},
		Ledger: &LedgerService{Store: st, DefaultAllocation: allocation},
		Hook:   hook,
	}
}

func TestWorkflowInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	hook := &recordingHook{}
	svc := newWorkflow(st, 2, hook)

	t.Run("creates, spends and delivers", func(t *testing.T) {
		res, err := svc.Invite(ctx, issuer.ID, Recipient{Email: "bob@example.com"}, nil)
		require.NoError(t, err)
		require.True(t, res.Delivered)
		require.False(t, res.DuplicateRecipient)
		require.NotEmpty(t, res.Key.Key)

		require.Len(t, hook.sent, 1)
		require.Equal(t, "bob@example.com", hook.sent[0][CtxRecipientEmail])

		remaining, err := svc.Ledger.Remaining(ctx, issuer.ID)
		require.NoError(t, err)
		require.Equal(t, 1, remaining)
	})

	t.Run("existing account flags duplicate but proceeds", func(t *testing.T) {
		res, err := svc.Invite(ctx, issuer.ID, Recipient{Email: "alice@example.com"}, nil)
		require.NoError(t, err)
		require.True(t, res.DuplicateRecipient)
		require.True(t, res.Delivered)
	})

	t.Run("spent allocation blocks further invites", func(t *testing.T) {
		_, err := svc.Invite(ctx, issuer.ID, Recipient{Email: "late@example.com"}, nil)
		require.ErrorIs(t, err, ErrQuotaExceeded)
	})
}

func TestWorkflowInviteUnlimited(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	svc := newWorkflow(st, domain.AllocationUnlimited, &recordingHook{})

	for range [5]struct{}{} {
		_, err := svc.Invite(ctx, issuer.ID, Recipient{Email: "x@example.com"}, nil)
		require.NoError(t, err)
	}
}

func TestWorkflowInviteDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	svc := newWorkflow(st, 2, &recordingHook{err: errors.New("smtp down")})

	res, err := svc.Invite(ctx, issuer.ID, Recipient{Email: "bob@example.com"}, nil)
	require.NoError(t, err)
	require.False(t, res.Delivered)

	// The key survives the failed delivery for a retry.
	_, err = st.Keys().GetKey(ctx, res.Key.Key)
	require.NoError(t, err)
}

func TestWorkflowInviteBulk(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	hook := &recordingHook{}
	svc := newWorkflow(st, 2, hook)

	recipients := []Recipient{
		{Email: "one@example.com"},
		{Email: "two@example.com"},
		{Email: "three@example.com"}, // over quota
	}

	results, err := svc.InviteBulk(ctx, issuer.ID, recipients, nil)
	require.ErrorIs(t, err, ErrQuotaExceeded)
	require.Len(t, results, 2)
	require.Len(t, hook.sent, 2)
}

func TestWorkflowPreview(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	issuer := seedUser(t, st, "alice")

	svc := newWorkflow(st, 0, &recordingHook{})

	// Preview works even with no allocation: nothing is spent or stored.
	dc, err := svc.Preview(ctx, issuer.ID, Recipient{Email: "bob@example.com"}, nil)
	require.NoError(t, err)
	require.Equal(t, PreviewKeyString, dc[CtxInvitationKey])

	_, err = st.Keys().GetKey(ctx, PreviewKeyString)
	require.ErrorIs(t, err, store.ErrNotFound)
}
