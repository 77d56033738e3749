package kafkaview

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/louisbranch/kafkaview/internal/services/console/api"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
	"github.com/louisbranch/kafkaview/internal/services/console/templates"
)

func newClustersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Manage registered clusters",
	}
	cmd.AddCommand(
		newClustersListCmd(opts),
		newClusterAddCmd(opts),
		newClusterUpdateCmd(opts),
		newClusterDeleteCmd(opts),
		newClusterMetricsCmd(opts),
	)
	return cmd
}

func newClustersListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withSession(cmd, routepath.Root, func(ctx context.Context, rt *runtime) error {
				clusters, err := rt.client.ListClusters(ctx)
				if err != nil {
					return err
				}
				table := rt.table([]string{"ID", rt.loc.Label("name"), rt.loc.Label("bootstrapServers"), rt.loc.Label("version"), rt.loc.Label("protocol")})
				for _, cluster := range clusters {
					table.Append([]string{
						strconv.FormatInt(cluster.ID, 10),
						cluster.Name,
						cluster.BootstrapServers,
						cluster.KafkaVersion,
						cluster.SecurityProtocol,
					})
				}
				table.Render()
				return nil
			})
		},
	}
}

// bindClusterFlags registers the connection settings shared by add and update.
func bindClusterFlags(cmd *cobra.Command, cluster *api.ClusterInfo) {
	flags := cmd.Flags()
	flags.StringVar(&cluster.Name, "name", "", "cluster name")
	flags.StringVar(&cluster.BootstrapServers, "bootstrap-servers", "", "comma separated broker addresses")
	flags.StringVar(&cluster.KafkaVersion, "kafka-version", "", "broker version")
	flags.StringVar(&cluster.SecurityProtocol, "security-protocol", "", "PLAINTEXT, SASL_PLAINTEXT, SASL_SSL or SSL")
	flags.StringVar(&cluster.SASLMechanism, "sasl-mechanism", "", "SASL mechanism")
	flags.StringVar(&cluster.SASLJAASConfig, "sasl-jaas-config", "", "SASL JAAS configuration")
	flags.StringVar(&cluster.Username, "username", "", "SASL user name")
	flags.StringVar(&cluster.Password, "password", "", "SASL password")
	flags.IntVar(&cluster.Timeout, "admin-timeout", 0, "admin client timeout in milliseconds")
}

func newClusterAddCmd(opts *options) *cobra.Command {
	var cluster api.ClusterInfo
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withSession(cmd, routepath.Root, func(ctx context.Context, rt *runtime) error {
				if err := rt.client.AddCluster(ctx, cluster); err != nil {
					return err
				}
				rt.printf("cluster %s added\n", cluster.Name)
				return nil
			})
		},
	}
	bindClusterFlags(cmd, &cluster)
	return cmd
}

func newClusterUpdateCmd(opts *options) *cobra.Command {
	var cluster api.ClusterInfo
	cmd := &cobra.Command{
		Use:   "update <cluster-id>",
		Short: "Replace a cluster's settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cluster.ID = id
			return opts.withSession(cmd, routepath.Root, func(ctx context.Context, rt *runtime) error {
				if err := rt.client.UpdateCluster(ctx, cluster); err != nil {
					return err
				}
				rt.printf("cluster %d updated\n", id)
				return nil
			})
		},
	}
	bindClusterFlags(cmd, &cluster)
	return cmd
}

func newClusterDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <cluster-id>",
		Short: "Remove a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withSession(cmd, routepath.Root, func(ctx context.Context, rt *runtime) error {
				if err := rt.client.DeleteCluster(ctx, id); err != nil {
					return err
				}
				rt.printf("cluster %d deleted\n", id)
				return nil
			})
		},
	}
}

func newClusterMetricsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <cluster-id>",
		Short: "Show a cluster's monitor summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withSession(cmd, routepath.Cluster(id), func(ctx context.Context, rt *runtime) error {
				metrics, err := rt.client.ClusterMetrics(ctx, id)
				if err != nil {
					return err
				}
				table := rt.table(nil)
				for _, row := range templates.MetricRows(rt.loc, metrics) {
					table.Append([]string{row.Label, row.Value})
				}
				table.Render()
				return nil
			})
		},
	}
}
